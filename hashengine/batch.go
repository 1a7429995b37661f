package hashengine

import (
	"fmt"
	"sync"
	"time"

	"github.com/coreforensics/hashcore/hashtypes"
	"github.com/coreforensics/hashcore/internal/obslog"
	"github.com/coreforensics/hashcore/storageprofiler"
	"github.com/coreforensics/hashcore/threadplanner"
)

const perFileResultTimeout = 300 * time.Second

// Profiler is the subset of *storageprofiler.Profiler the Batch Hash Engine
// depends on, so tests can substitute a fixed verdict without touching a
// filesystem.
type Profiler interface {
	Analyze(path string) hashtypes.StorageInfo
}

var _ Profiler = (*storageprofiler.Profiler)(nil)

// HashFiles discovers, then hashes, every file reachable from paths. The
// profiler argument may be nil, meaning "no profiler available" — forcing
// sequential mode regardless of file count.
func HashFiles(paths []string, algorithm hashtypes.Algorithm, profiler Profiler, options HashOptions) (hashtypes.HashResultSet, error) {
	files, err := discover(paths)
	if err != nil {
		return nil, hashtypes.NewCalcError(hashtypes.CalcIO, "", err)
	}

	metrics := &hashtypes.HashOperationMetrics{
		Start:      time.Now(),
		TotalFiles: uint64(len(files)),
	}

	workers, useParallel := planWorkers(files, profiler, options)

	var results hashtypes.HashResultSet
	if useParallel {
		results, err = hashParallel(files, algorithm, workers, options, metrics)
		if err != nil {
			obslog.Warn("hashengine: parallel batch failed, retrying sequentially", "error", err)
			results, err = hashSequential(files, algorithm, options, metrics)
		}
	} else {
		results, err = hashSequential(files, algorithm, options, metrics)
	}
	if err != nil {
		return nil, err
	}

	metrics.End = time.Now()

	if len(files) > 0 && len(results.Successful()) == 0 {
		return results, hashtypes.NewCalcError(hashtypes.CalcAllFailed, "", nil)
	}

	return results, nil
}

// planWorkers decides sequential vs parallel mode and the worker count for
// parallel mode, per §4.8's parallelism decision.
func planWorkers(files []string, profiler Profiler, options HashOptions) (workers int, parallel bool) {
	if len(files) <= 1 || !options.EnableParallel || profiler == nil {
		return 1, false
	}

	if options.MaxWorkersOverride != nil {
		w := int(*options.MaxWorkersOverride)
		return w, w > 1
	}

	info := profiler.Analyze(files[0])
	w := threadplanner.Plan(&info, nil, uint64(len(files)), threadplanner.Hash)
	return w, w > 1
}

func hashSequential(files []string, algorithm hashtypes.Algorithm, options HashOptions, metrics *hashtypes.HashOperationMetrics) (hashtypes.HashResultSet, error) {
	results := make(hashtypes.HashResultSet, len(files))

	for i, path := range files {
		if options.isCancelled() {
			return results, hashtypes.NewCalcError(hashtypes.CalcCancelled, "", nil)
		}

		metrics.CurrentFile = path
		result := HashFile(path, path, algorithm, options.Cancel, options.Pause)
		results[path] = result

		metrics.ProcessedFiles++
		metrics.ProcessedBytes += result.FileSize
		if !result.Success() {
			metrics.FailedFiles++
		}

		options.reportProgress(percentOf(uint64(i+1), uint64(len(files))), fmt.Sprintf("%d/%d", i+1, len(files)))
	}

	return results, nil
}

func hashParallel(files []string, algorithm hashtypes.Algorithm, workers int, options HashOptions, metrics *hashtypes.HashOperationMetrics) (hashtypes.HashResultSet, error) {
	results := make(hashtypes.HashResultSet, len(files))
	var mu sync.Mutex

	chunkSize := min(3*workers, 100)
	if chunkSize < 1 {
		chunkSize = 1
	}

	var processed uint64
	total := uint64(len(files))

	for start := 0; start < len(files); start += chunkSize {
		if options.isCancelled() {
			return results, hashtypes.NewCalcError(hashtypes.CalcCancelled, "", nil)
		}

		end := start + chunkSize
		if end > len(files) {
			end = len(files)
		}
		chunk := files[start:end]

		sem := hashtypes.NewSemaphore(workers)
		type outcome struct {
			path   string
			result hashtypes.HashResult
		}
		resultCh := make(chan outcome, len(chunk))

		for _, path := range chunk {
			sem.Acquire()
			go func(path string) {
				defer sem.Release()
				resultCh <- outcome{path: path, result: hashWithTimeout(path, algorithm, options)}
			}(path)
		}

		for range chunk {
			if options.isCancelled() {
				return results, hashtypes.NewCalcError(hashtypes.CalcCancelled, "", nil)
			}
			o := <-resultCh

			mu.Lock()
			results[o.path] = o.result
			mu.Unlock()

			processed++
			metrics.ProcessedFiles = processed
			metrics.ProcessedBytes += o.result.FileSize
			if !o.result.Success() {
				metrics.FailedFiles++
			}

			options.reportProgress(percentOf(processed, total), fmt.Sprintf("%d/%d", processed, total))
		}
	}

	return results, nil
}

// hashWithTimeout bounds a single file's hash with the per-file 300s
// result-retrieval timeout that applies only in parallel mode.
func hashWithTimeout(path string, algorithm hashtypes.Algorithm, options HashOptions) hashtypes.HashResult {
	done := make(chan hashtypes.HashResult, 1)
	go func() {
		done <- HashFile(path, path, algorithm, options.Cancel, options.Pause)
	}()

	select {
	case result := <-done:
		return result
	case <-time.After(perFileResultTimeout):
		obslog.Warn("hashengine: per-file timeout", "path", path)
		return hashtypes.HashResult{
			FilePath: path,
			Err:      hashtypes.NewCalcError(hashtypes.CalcTimeout, path, nil),
		}
	}
}

func percentOf(processed, total uint64) uint8 {
	if total == 0 {
		return 100
	}
	pct := float64(processed) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	return uint8(pct)
}
