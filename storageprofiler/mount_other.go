//go:build !unix && !windows

package storageprofiler

import "path/filepath"

// mountRoot has no device-walking implementation on this platform; the
// path itself stands in, which only weakens memoization granularity, not
// correctness.
func mountRoot(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func driveLetterOf(path string) string {
	return mountRoot(path)
}
