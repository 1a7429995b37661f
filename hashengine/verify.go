package hashengine

import (
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coreforensics/hashcore/hashtypes"
	"github.com/coreforensics/hashcore/progress"
	"github.com/coreforensics/hashcore/threadplanner"
)

// VerificationReport is the successful return of Verify: the outcome map
// plus the metadata bundle needed to explain how the comparison ran.
type VerificationReport struct {
	Outcomes         map[string]hashtypes.VerificationOutcome
	SourceMetrics    hashtypes.HashOperationMetrics
	TargetMetrics    hashtypes.HashOperationMetrics
	SourceStorage    hashtypes.StorageInfo
	TargetStorage    hashtypes.StorageInfo
	SourceThreads    int
	TargetThreads    int
	WallClockSeconds float64
	EffectiveMBPS    float64
}

// cancelFlag is the simple boolean cancel signal shared between the caller
// and both sides' batch engines during a verification run. It reports set
// once Trigger has been called or whenever the caller's own token is set.
type cancelFlag struct {
	set    atomic.Bool
	parent hashtypes.CancelToken
}

func (c *cancelFlag) IsSet() bool {
	return c.set.Load() || (c.parent != nil && c.parent.IsSet())
}
func (c *cancelFlag) Trigger()    { c.set.Store(true) }

// Verify hashes both sides concurrently and compares them by relative path.
// A HashMismatch, MissingTarget, or MissingSource is a result, not an
// error: only I/O failure or cancellation surfaces as a HashVerifyError.
func Verify(sourcePaths, targetPaths []string, algorithm hashtypes.Algorithm, profiler Profiler, options HashOptions) (*VerificationReport, error) {
	sourceFiles, err := discover(sourcePaths)
	if err != nil {
		return nil, hashtypes.NewVerifyError(hashtypes.VerifySourceFailed, err)
	}
	if len(sourceFiles) == 0 {
		return nil, hashtypes.NewVerifyError(hashtypes.VerifyNoSourceFiles, nil)
	}

	targetFiles, err := discover(targetPaths)
	if err != nil {
		return nil, hashtypes.NewVerifyError(hashtypes.VerifyTargetFailed, err)
	}
	if len(targetFiles) == 0 {
		return nil, hashtypes.NewVerifyError(hashtypes.VerifyNoTargetFiles, nil)
	}

	var sourceInfo, targetInfo hashtypes.StorageInfo
	if profiler != nil {
		sourceInfo = profiler.Analyze(sourceFiles[0])
		targetInfo = profiler.Analyze(targetFiles[0])
	}
	sourceThreads := threadplanner.Plan(&sourceInfo, nil, uint64(len(sourceFiles)), threadplanner.Hash)
	targetThreads := threadplanner.Plan(&targetInfo, nil, uint64(len(targetFiles)), threadplanner.Hash)

	sink := progress.NewThrottledSink(func(percent uint8, message string) {
		options.reportProgress(percent, message)
	})
	aggregator := progress.NewVerificationAggregator(uint64(len(sourceFiles)), uint64(len(targetFiles)), sink)

	shared := &cancelFlag{parent: options.Cancel}

	sourceThreadsU := uint32(sourceThreads)
	targetThreadsU := uint32(targetThreads)

	sourceOptions := options
	sourceOptions.MaxWorkersOverride = &sourceThreadsU
	sourceOptions.Cancel = shared
	sourceOptions.Progress = func(percent uint8, message string) {
		aggregator.Report(progress.SourceSide, percent, message)
	}

	targetOptions := options
	targetOptions.MaxWorkersOverride = &targetThreadsU
	targetOptions.Cancel = shared
	targetOptions.Progress = func(percent uint8, message string) {
		aggregator.Report(progress.TargetSide, percent, message)
	}

	var wg sync.WaitGroup
	var sourceResults, targetResults hashtypes.HashResultSet
	var sourceErr, targetErr error
	sourceMetrics := &hashtypes.HashOperationMetrics{Start: time.Now(), TotalFiles: uint64(len(sourceFiles))}
	targetMetrics := &hashtypes.HashOperationMetrics{Start: time.Now(), TotalFiles: uint64(len(targetFiles))}

	wg.Add(2)
	go func() {
		defer wg.Done()
		sourceResults, sourceErr = hashSideForVerify(sourceFiles, algorithm, sourceThreads, sourceOptions, sourceMetrics)
	}()
	go func() {
		defer wg.Done()
		targetResults, targetErr = hashSideForVerify(targetFiles, algorithm, targetThreads, targetOptions, targetMetrics)
	}()
	wg.Wait()

	aggregator.Flush()

	if sourceErr != nil {
		shared.Trigger()
		return nil, hashtypes.NewVerifyError(hashtypes.VerifySourceFailed, sourceErr)
	}
	if targetErr != nil {
		shared.Trigger()
		return nil, hashtypes.NewVerifyError(hashtypes.VerifyTargetFailed, targetErr)
	}

	outcomes := compare(sourceResults, targetResults)

	sourceDur := sourceMetrics.Duration().Seconds()
	targetDur := targetMetrics.Duration().Seconds()
	wallClock := sourceDur
	if targetDur > wallClock {
		wallClock = targetDur
	}
	totalBytes := sourceMetrics.ProcessedBytes + targetMetrics.ProcessedBytes
	effectiveMBPS := 0.0
	if wallClock > 0 {
		effectiveMBPS = float64(totalBytes) / (1 << 20) / wallClock
	}

	return &VerificationReport{
		Outcomes:         outcomes,
		SourceMetrics:    *sourceMetrics,
		TargetMetrics:    *targetMetrics,
		SourceStorage:    sourceInfo,
		TargetStorage:    targetInfo,
		SourceThreads:    sourceThreads,
		TargetThreads:    targetThreads,
		WallClockSeconds: wallClock,
		EffectiveMBPS:    effectiveMBPS,
	}, nil
}

// hashSideForVerify runs one side of the verification as a Batch Hash
// Engine invocation with a pre-chosen worker count, skipping redundant
// profiling (the caller already profiled both sides once, up front).
func hashSideForVerify(files []string, algorithm hashtypes.Algorithm, threads int, options HashOptions, metrics *hashtypes.HashOperationMetrics) (hashtypes.HashResultSet, error) {
	var results hashtypes.HashResultSet
	var err error

	if len(files) <= 1 || !options.EnableParallel || threads <= 1 {
		results, err = hashSequential(files, algorithm, options, metrics)
	} else {
		results, err = hashParallel(files, algorithm, threads, options, metrics)
	}
	metrics.End = time.Now()
	return results, err
}

// compare derives a relative key for every entry (by stripping the deepest
// common directory prefix per side) and classifies each into one of the
// four VerificationOutcome variants.
func compare(sourceResults, targetResults hashtypes.HashResultSet) map[string]hashtypes.VerificationOutcome {
	sourcePaths := keysOf(sourceResults)
	targetPaths := keysOf(targetResults)

	sourceRoot := commonPrefixDir(sourcePaths)
	targetRoot := commonPrefixDir(targetPaths)

	sourceByRel := reindexByRelative(sourceResults, sourceRoot)
	targetByRel := reindexByRelative(targetResults, targetRoot)

	outcomes := make(map[string]hashtypes.VerificationOutcome, len(sourceByRel)+len(targetByRel))

	for rel, source := range sourceByRel {
		target, ok := targetByRel[rel]
		if !ok {
			outcomes[rel] = hashtypes.NewMissingTarget(source, "present in source, absent in target")
			continue
		}
		if strings.EqualFold(source.HashHex, target.HashHex) && source.HashHex != "" {
			outcomes[rel] = hashtypes.NewExactMatch(source, target)
		} else {
			outcomes[rel] = hashtypes.NewHashMismatch(source, target, "digest mismatch")
		}
	}
	for rel, target := range targetByRel {
		if _, ok := sourceByRel[rel]; !ok {
			outcomes[rel] = hashtypes.NewMissingSource(target, "present in target, absent in source")
		}
	}

	return outcomes
}

func keysOf(set hashtypes.HashResultSet) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return keys
}

func reindexByRelative(set hashtypes.HashResultSet, root string) map[string]hashtypes.HashResult {
	out := make(map[string]hashtypes.HashResult, len(set))
	for path, result := range set {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		out[rel] = result
	}
	return out
}
