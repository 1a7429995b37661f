//go:build darwin

package storageprofiler

import (
	"os/exec"
	"strings"

	"github.com/coreforensics/hashcore/hashtypes"
)

// detectOSQuery parses the "Solid State" property of "diskutil info",
// matching the original detector's macOS tier.
func detectOSQuery(driveLetter string) (hashtypes.StorageInfo, bool) {
	out, err := exec.Command("diskutil", "info", driveLetter).Output()
	if err != nil {
		return hashtypes.StorageInfo{}, false
	}

	solidState := false
	found := false
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Solid State:") {
			found = true
			solidState = strings.Contains(line, "Yes")
		}
	}
	if !found {
		return hashtypes.StorageInfo{}, false
	}

	if solidState {
		return hashtypes.StorageInfo{
			DriveType:          hashtypes.DriveSSD,
			IsSSD:              hashtypes.BoolPtr(true),
			RecommendedThreads: 16,
			Confidence:         0.6,
			DetectionMethod:    "diskutil",
			PerformanceClass:   4,
		}, true
	}
	return hashtypes.StorageInfo{
		DriveType:          hashtypes.DriveHDD,
		IsSSD:              hashtypes.BoolPtr(false),
		RecommendedThreads: 8,
		Confidence:         0.6,
		DetectionMethod:    "diskutil",
		PerformanceClass:   2,
	}, true
}
