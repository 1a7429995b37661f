//go:build !linux && !darwin && !windows

package storageprofiler

import "github.com/coreforensics/hashcore/hashtypes"

// detectOSQuery has no implementation on this platform; callers fall
// through to the conservative fallback.
func detectOSQuery(driveLetter string) (hashtypes.StorageInfo, bool) {
	return hashtypes.StorageInfo{}, false
}
