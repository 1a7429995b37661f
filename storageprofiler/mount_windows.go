//go:build windows

package storageprofiler

import (
	"path/filepath"
	"strings"
)

// mountRoot returns the volume name (e.g. "C:\") for path on Windows.
func mountRoot(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	vol := filepath.VolumeName(abs)
	if vol == "" {
		return abs
	}
	return vol + `\`
}

// driveLetterOf returns the drive letter (e.g. "C:") for path.
func driveLetterOf(path string) string {
	root := mountRoot(path)
	return strings.TrimSuffix(root, `\`)
}
