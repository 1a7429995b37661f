package progress

import (
	"sync"
	"time"
)

const defaultRateWindow = 10

type rateSample struct {
	at    time.Time
	bytes uint64
}

// RateEstimator tracks a sliding window of recently completed items to
// derive items/sec, MB/s, and an ETA, for the CLI's presentation layer.
// This is not a core invariant: it is purely advisory output layered on
// top of HashOperationMetrics.
type RateEstimator struct {
	mu         sync.Mutex
	window     int
	recent     []rateSample
	totalItems uint64
	totalBytes uint64
	start      time.Time
}

// NewRateEstimator constructs an estimator with the default 10-item window.
func NewRateEstimator() *RateEstimator {
	return &RateEstimator{window: defaultRateWindow, start: time.Now()}
}

// RecordItem records completion of one item, optionally carrying its size
// in bytes for throughput calculation.
func (r *RateEstimator) RecordItem(itemBytes uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recent = append(r.recent, rateSample{at: time.Now(), bytes: itemBytes})
	r.totalItems++
	r.totalBytes += itemBytes

	if len(r.recent) > r.window {
		r.recent = r.recent[1:]
	}
}

// ItemsPerSecond reports the current rate over the recent window.
func (r *RateEstimator) ItemsPerSecond() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.itemsPerSecondLocked()
}

func (r *RateEstimator) itemsPerSecondLocked() float64 {
	if len(r.recent) < 2 {
		return 0
	}
	span := r.recent[len(r.recent)-1].at.Sub(r.recent[0].at).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(len(r.recent)) / span
}

// RateMBPS reports current throughput in MiB/s over the recent window.
func (r *RateEstimator) RateMBPS() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.recent) < 2 {
		return 0
	}
	span := r.recent[len(r.recent)-1].at.Sub(r.recent[0].at).Seconds()
	if span <= 0 {
		return 0
	}
	var bytesInWindow uint64
	for _, s := range r.recent {
		bytesInWindow += s.bytes
	}
	mib := float64(bytesInWindow) / (1 << 20)
	return mib / span
}

// AverageRateMBPS reports average throughput across the whole operation.
func (r *RateEstimator) AverageRateMBPS() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	mib := float64(r.totalBytes) / (1 << 20)
	return mib / elapsed
}

// ETA estimates remaining time given the number of items left, based on the
// current item rate. Returns 0 when the rate is not yet known.
func (r *RateEstimator) ETA(remainingItems uint64) time.Duration {
	r.mu.Lock()
	rate := r.itemsPerSecondLocked()
	r.mu.Unlock()

	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(remainingItems)/rate*float64(time.Second))
}

// Reset clears all accumulated samples, as for a new operation.
func (r *RateEstimator) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recent = nil
	r.totalItems = 0
	r.totalBytes = 0
	r.start = time.Now()
}
