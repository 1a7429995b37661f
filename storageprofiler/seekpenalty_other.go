//go:build !windows

package storageprofiler

import "github.com/coreforensics/hashcore/hashtypes"

// detectSeekPenalty has no implementation outside Windows; the
// StorageDeviceSeekPenaltyProperty IOCTL is a Windows-only concept. The
// miss is always attributed to the same reason so the audit trail explains
// why this tier was skipped rather than just that it was.
func detectSeekPenalty(driveLetter string) (hashtypes.StorageInfo, bool, string) {
	return hashtypes.StorageInfo{}, false, "seek_penalty_not_implemented"
}
