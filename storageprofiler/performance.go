package storageprofiler

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/coreforensics/hashcore/hashtypes"
)

const probeSize = 10 * 1024 * 1024 // 10 MiB

// detectPerformance writes a fresh random buffer under path (the directory
// containing path when path is a file; the system temp dir if that directory
// is not writable), fsyncs, reads it back, and classifies the device from
// observed write/read throughput. The probe file is always removed, on
// every return path.
func detectPerformance(path string, removable bool) (hashtypes.StorageInfo, bool) {
	dir := path
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	if !writable(dir) {
		dir = os.TempDir()
	}

	f, err := os.CreateTemp(dir, ".hashcore-probe-*")
	if err != nil {
		return hashtypes.StorageInfo{}, false
	}
	probePath := f.Name()
	defer os.Remove(probePath)
	defer f.Close()

	buf := make([]byte, probeSize)
	if _, err := rand.Read(buf); err != nil {
		return hashtypes.StorageInfo{}, false
	}

	writeStart := time.Now()
	if _, err := f.Write(buf); err != nil {
		return hashtypes.StorageInfo{}, false
	}
	if err := f.Sync(); err != nil {
		return hashtypes.StorageInfo{}, false
	}
	writeElapsed := time.Since(writeStart)

	if _, err := f.Seek(0, 0); err != nil {
		return hashtypes.StorageInfo{}, false
	}
	readBuf := make([]byte, probeSize)
	readStart := time.Now()
	if _, err := readFull(f, readBuf); err != nil {
		return hashtypes.StorageInfo{}, false
	}
	readElapsed := time.Since(readStart)

	writeMBps := mibPerSecond(probeSize, writeElapsed)
	readMBps := mibPerSecond(probeSize, readElapsed)

	return classify(writeMBps, readMBps, removable), true
}

func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

func mibPerSecond(bytes int, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(bytes) / (1 << 20) / secs
}

func classify(writeMBps, readMBps float64, removable bool) hashtypes.StorageInfo {
	ssd := true
	var driveType hashtypes.DriveType
	var confidence float32
	var perfClass uint8
	var advisoryThreads uint32

	switch {
	case writeMBps < 50:
		driveType = hashtypes.DriveHDD
		ssd = false
		confidence = 0.8
		perfClass = 2
		advisoryThreads = 8
	case writeMBps > 100 && readMBps > 200:
		driveType = hashtypes.DriveNVMe
		confidence = 0.8
		perfClass = 5
		advisoryThreads = 16
	case writeMBps > 50 && readMBps > 100:
		driveType = hashtypes.DriveSSD
		confidence = 0.75
		perfClass = 4
		advisoryThreads = 16
	case readMBps < 50:
		driveType = hashtypes.DriveHDD
		ssd = false
		confidence = 0.7
		perfClass = 2
		advisoryThreads = 8
	default:
		driveType = hashtypes.DriveHDD
		ssd = false
		confidence = 0.4
		perfClass = 2
		advisoryThreads = 4
	}

	if removable {
		switch driveType {
		case hashtypes.DriveNVMe, hashtypes.DriveSSD:
			driveType = hashtypes.DriveExternalSSD
		case hashtypes.DriveHDD:
			driveType = hashtypes.DriveExternalHDD
		}
	}

	return hashtypes.StorageInfo{
		DriveType:          driveType,
		IsSSD:              hashtypes.BoolPtr(ssd),
		IsRemovable:        removable,
		RecommendedThreads: advisoryThreads,
		Confidence:         confidence,
		DetectionMethod:    "performance_heuristic",
		PerformanceClass:   perfClass,
	}
}

func writable(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	probe := filepath.Join(dir, ".hashcore-writable-probe")
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}
