// Package hashengine implements the Single-File Hasher, the Batch Hash
// Engine, and the Bidirectional Verifier: the streaming I/O layer built on
// top of digest, storageprofiler, threadplanner, and progress.
package hashengine

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/coreforensics/hashcore/digest"
	"github.com/coreforensics/hashcore/hashtypes"
)

// HashFile streams path and returns its HashResult. relativePath is carried
// through unchanged for the caller's bookkeeping (e.g. verification keys);
// it is not used to locate the file.
//
// Buffer size is chosen from the file size observed at entry (§4.2). Between
// reads, pause is honored (blocking, no digest mutation while paused) and
// cancel is honored (aborts immediately, no partial result emitted).
func HashFile(path, relativePath string, algorithm hashtypes.Algorithm, cancel hashtypes.CancelToken, pause hashtypes.PauseToken) hashtypes.HashResult {
	stat, err := os.Stat(path)
	if err != nil {
		return hashtypes.HashResult{
			FilePath:     path,
			RelativePath: relativePath,
			Algorithm:    algorithm,
			Err:          classifyStatError(path, err),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return hashtypes.HashResult{
			FilePath:     path,
			RelativePath: relativePath,
			Algorithm:    algorithm,
			FileSize:     uint64(stat.Size()),
			Err:          classifyOpenError(path, err),
		}
	}
	defer f.Close()

	d, err := digest.New(algorithm)
	if err != nil {
		return hashtypes.HashResult{
			FilePath:     path,
			RelativePath: relativePath,
			Algorithm:    algorithm,
			FileSize:     uint64(stat.Size()),
			Err:          hashtypes.NewCalcError(hashtypes.CalcIO, path, err),
		}
	}

	buf := make([]byte, digest.BufferSize(uint64(stat.Size())))

	start := time.Now()
	for {
		if pause != nil {
			pause.WaitIfPaused()
		}
		if cancel != nil && cancel.IsSet() {
			return hashtypes.HashResult{
				FilePath:     path,
				RelativePath: relativePath,
				Algorithm:    algorithm,
				FileSize:     uint64(stat.Size()),
				Err:          hashtypes.NewCalcError(hashtypes.CalcCancelled, path, nil),
			}
		}

		n, readErr := f.Read(buf)
		if n > 0 {
			d.Update(buf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return hashtypes.HashResult{
				FilePath:     path,
				RelativePath: relativePath,
				Algorithm:    algorithm,
				FileSize:     uint64(stat.Size()),
				Err:          hashtypes.NewCalcError(hashtypes.CalcIO, path, readErr),
			}
		}
	}
	duration := time.Since(start)

	return hashtypes.HashResult{
		FilePath:     path,
		RelativePath: relativePath,
		Algorithm:    algorithm,
		HashHex:      d.Finalize(),
		FileSize:     uint64(stat.Size()),
		Duration:     duration,
	}
}

func classifyStatError(path string, err error) *hashtypes.HashCalcError {
	if errors.Is(err, os.ErrNotExist) {
		return hashtypes.NewCalcError(hashtypes.CalcNotFound, path, err)
	}
	if errors.Is(err, os.ErrPermission) {
		return hashtypes.NewCalcError(hashtypes.CalcPermissionDenied, path, err)
	}
	return hashtypes.NewCalcError(hashtypes.CalcIO, path, err)
}

func classifyOpenError(path string, err error) *hashtypes.HashCalcError {
	if errors.Is(err, os.ErrNotExist) {
		return hashtypes.NewCalcError(hashtypes.CalcNotFound, path, err)
	}
	if errors.Is(err, os.ErrPermission) {
		return hashtypes.NewCalcError(hashtypes.CalcPermissionDenied, path, err)
	}
	return hashtypes.NewCalcError(hashtypes.CalcIO, path, err)
}
