// Package progress implements the rate-limited progress plumbing shared by
// the Batch Hash Engine and Bidirectional Verifier: a throttled sink safe
// for concurrent reporters, a two-sided percent aggregator for
// verification, and a sliding-window rate/ETA estimator.
package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/coreforensics/hashcore/internal/obslog"
)

const defaultUpdateInterval = 100 * time.Millisecond

// ThrottledSink forwards (percent, message) reports to a single downstream
// callback at most once per update interval, except that percent 0 and 100
// always bypass throttling. A suppressed report is retained as pending and
// delivered by the next report or by Flush, so the final state is never
// lost.
type ThrottledSink struct {
	mu             sync.Mutex
	callback       func(percent uint8, message string)
	updateInterval time.Duration
	lastUpdate     time.Time
	lastPercent    int // -1 = none yet
	pending        *pendingUpdate
}

type pendingUpdate struct {
	percent uint8
	message string
}

// NewThrottledSink constructs a sink with the default 100ms update
// interval. A nil callback is replaced with a no-op.
func NewThrottledSink(callback func(percent uint8, message string)) *ThrottledSink {
	if callback == nil {
		callback = func(uint8, string) {}
	}
	return &ThrottledSink{
		callback:       callback,
		updateInterval: defaultUpdateInterval,
		lastPercent:    -1,
	}
}

// WithUpdateInterval overrides the default throttle interval. Intended for
// tests that need deterministic, fast throttling.
func (s *ThrottledSink) WithUpdateInterval(d time.Duration) *ThrottledSink {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateInterval = d
	return s
}

// Report submits a progress update. Safe to call from any goroutine.
func (s *ThrottledSink) Report(percent uint8, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	if percent == 0 || percent == 100 {
		s.doReport(percent, message, now)
		return
	}

	sinceLast := now.Sub(s.lastUpdate)
	changed := int(percent) != s.lastPercent

	if sinceLast >= s.updateInterval && changed {
		s.doReport(percent, message, now)
		return
	}

	s.pending = &pendingUpdate{percent: percent, message: message}
}

// doReport invokes the callback under the lock, swallowing any panic so a
// misbehaving downstream never corrupts sink state or propagates upward.
func (s *ThrottledSink) doReport(percent uint8, message string, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "progress: callback panicked: %v\n", r)
			obslog.Warn("progress: callback panicked", "recovered", r)
		}
	}()

	s.callback(percent, message)
	s.lastUpdate = now
	s.lastPercent = int(percent)
	s.pending = nil
}

// Flush delivers the latest pending report, if any. Call this once at the
// end of an operation so a suppressed near-final update is not lost.
func (s *ThrottledSink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return
	}
	p := s.pending
	s.doReport(p.percent, p.message, time.Now())
}

// Reset clears all throttling state, as if newly constructed.
func (s *ThrottledSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdate = time.Time{}
	s.lastPercent = -1
	s.pending = nil
}
