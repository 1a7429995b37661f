//go:build linux

package storageprofiler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/coreforensics/hashcore/hashtypes"
)

// detectOSQuery reads /sys/block/<dev>/queue/rotational and applies a
// device-name heuristic for nvme devices, matching the original detector's
// Linux tier.
func detectOSQuery(driveLetter string) (hashtypes.StorageInfo, bool) {
	dev := blockDeviceFor(driveLetter)
	if dev == "" {
		return hashtypes.StorageInfo{}, false
	}

	if strings.HasPrefix(dev, "nvme") {
		return hashtypes.StorageInfo{
			DriveType:          hashtypes.DriveNVMe,
			BusType:            hashtypes.BusNVMe,
			IsSSD:              hashtypes.BoolPtr(true),
			RecommendedThreads: 16,
			Confidence:         0.65,
			DetectionMethod:    "sysfs_device_name",
			PerformanceClass:   5,
		}, true
	}

	data, err := os.ReadFile(filepath.Join("/sys/block", dev, "queue", "rotational"))
	if err != nil {
		return hashtypes.StorageInfo{}, false
	}

	rotational := strings.TrimSpace(string(data)) == "1"
	if rotational {
		return hashtypes.StorageInfo{
			DriveType:          hashtypes.DriveHDD,
			BusType:            hashtypes.BusSATA,
			IsSSD:              hashtypes.BoolPtr(false),
			RecommendedThreads: 8,
			Confidence:         0.6,
			DetectionMethod:    "sysfs_rotational",
			PerformanceClass:   2,
		}, true
	}

	return hashtypes.StorageInfo{
		DriveType:          hashtypes.DriveSSD,
		BusType:            hashtypes.BusSATA,
		IsSSD:              hashtypes.BoolPtr(true),
		RecommendedThreads: 16,
		Confidence:         0.6,
		DetectionMethod:    "sysfs_rotational",
		PerformanceClass:   4,
	}, true
}
