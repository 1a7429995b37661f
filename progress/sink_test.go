package progress

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestThrottledSinkAlwaysDeliversZeroAndHundred(t *testing.T) {
	var calls []uint8
	var mu sync.Mutex

	sink := NewThrottledSink(func(percent uint8, _ string) {
		mu.Lock()
		calls = append(calls, percent)
		mu.Unlock()
	}).WithUpdateInterval(time.Hour) // throttle everything in between

	sink.Report(0, "start")
	sink.Report(42, "midway") // should be suppressed (within interval)
	sink.Report(100, "done")

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 || calls[0] != 0 || calls[1] != 100 {
		t.Errorf("expected [0 100], got %v", calls)
	}
}

func TestThrottledSinkFlushDeliversPending(t *testing.T) {
	var lastPercent uint8
	var calls int32

	sink := NewThrottledSink(func(percent uint8, _ string) {
		lastPercent = percent
		atomic.AddInt32(&calls, 1)
	}).WithUpdateInterval(time.Hour)

	sink.Report(0, "start")
	sink.Report(55, "partial")

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected exactly 1 call before flush, got %d", calls)
	}

	sink.Flush()

	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 calls after flush, got %d", calls)
	}
	if lastPercent != 55 {
		t.Errorf("expected flushed percent 55, got %d", lastPercent)
	}
}

func TestThrottledSinkSwallowsCallbackPanic(t *testing.T) {
	sink := NewThrottledSink(func(percent uint8, _ string) {
		panic("boom")
	})

	sink.Report(0, "start") // must not panic the test

	// sink must remain usable after a panicking callback
	sink.Report(100, "done")
}

func TestVerificationAggregatorWeightsBySideFileCount(t *testing.T) {
	var got uint8
	sink := NewThrottledSink(func(percent uint8, _ string) {
		got = percent
	}).WithUpdateInterval(0)

	agg := NewVerificationAggregator(3, 1, sink) // source has 3x the weight of target

	agg.Report(SourceSide, 100, "source done")
	agg.Report(TargetSide, 0, "target starting")

	// weighted: (100*3 + 0*1) / 4 = 75
	if got != 75 {
		t.Errorf("expected weighted combined percent 75, got %d", got)
	}
}

func TestVerificationAggregatorMessageIncludesPerSidePercents(t *testing.T) {
	var got string
	sink := NewThrottledSink(func(_ uint8, message string) {
		got = message
	}).WithUpdateInterval(0)

	agg := NewVerificationAggregator(1, 1, sink)

	agg.Report(SourceSide, 40, "3/10")
	agg.Report(TargetSide, 70, "7/10")

	want := "source: 3/10 (40%) | target: 7/10 (70%)"
	if got != want {
		t.Errorf("combined message = %q, want %q", got, want)
	}
}

func TestVerificationAggregatorNeverRegresses(t *testing.T) {
	var got uint8
	sink := NewThrottledSink(func(percent uint8, _ string) {
		got = percent
	}).WithUpdateInterval(0)

	agg := NewVerificationAggregator(1, 1, sink)

	agg.Report(SourceSide, 80, "a")
	agg.Report(TargetSide, 80, "b")
	first := got

	agg.Report(SourceSide, 10, "regressed locally") // combined would drop to 45
	if got < first {
		t.Errorf("combined percent regressed: first=%d, after=%d", first, got)
	}
}

func TestRateEstimatorZeroBeforeTwoSamples(t *testing.T) {
	r := NewRateEstimator()
	if rate := r.ItemsPerSecond(); rate != 0 {
		t.Errorf("expected 0 items/sec with <2 samples, got %f", rate)
	}
	r.RecordItem(1024)
	if rate := r.ItemsPerSecond(); rate != 0 {
		t.Errorf("expected 0 items/sec with exactly 1 sample, got %f", rate)
	}
}

func TestRateEstimatorETAZeroWithoutRate(t *testing.T) {
	r := NewRateEstimator()
	if eta := r.ETA(100); eta != 0 {
		t.Errorf("expected 0 ETA with no rate established, got %v", eta)
	}
}
