//go:build windows

package storageprofiler

import (
	"os/exec"
	"strings"

	"github.com/coreforensics/hashcore/hashtypes"
)

// detectOSQuery shells out to PowerShell's Get-PhysicalDisk cmdlet, which
// wraps the MSFT_PhysicalDisk WMI class named in the original detector's
// Windows tier, and reads its MediaType/BusType columns.
func detectOSQuery(driveLetter string) (hashtypes.StorageInfo, bool) {
	cmd := exec.Command("powershell", "-NoProfile", "-Command",
		"Get-PhysicalDisk | Select-Object MediaType,BusType | Format-List")
	out, err := cmd.Output()
	if err != nil {
		return hashtypes.StorageInfo{}, false
	}

	text := strings.ToLower(string(out))
	switch {
	case strings.Contains(text, "ssd") && strings.Contains(text, "nvme"):
		return hashtypes.StorageInfo{
			DriveType:          hashtypes.DriveNVMe,
			BusType:            hashtypes.BusNVMe,
			IsSSD:              hashtypes.BoolPtr(true),
			RecommendedThreads: 16,
			Confidence:         0.6,
			DetectionMethod:    "wmi",
			DriveLetter:        driveLetter,
			PerformanceClass:   5,
		}, true
	case strings.Contains(text, "ssd"):
		return hashtypes.StorageInfo{
			DriveType:          hashtypes.DriveSSD,
			BusType:            hashtypes.BusSATA,
			IsSSD:              hashtypes.BoolPtr(true),
			RecommendedThreads: 16,
			Confidence:         0.6,
			DetectionMethod:    "wmi",
			DriveLetter:        driveLetter,
			PerformanceClass:   4,
		}, true
	case strings.Contains(text, "hdd"):
		return hashtypes.StorageInfo{
			DriveType:          hashtypes.DriveHDD,
			BusType:            hashtypes.BusSATA,
			IsSSD:              hashtypes.BoolPtr(false),
			RecommendedThreads: 8,
			Confidence:         0.6,
			DetectionMethod:    "wmi",
			DriveLetter:        driveLetter,
			PerformanceClass:   2,
		}, true
	default:
		return hashtypes.StorageInfo{}, false
	}
}
