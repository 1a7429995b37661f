//go:build linux

package storageprofiler

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// isRemovable reports whether the block device backing path is flagged
// removable in sysfs. Any failure to resolve the device is treated as
// "not removable" — the caller still has the conservative fallback as a
// backstop if every detector misses.
func isRemovable(path string) bool {
	dev := blockDeviceFor(path)
	if dev == "" {
		return false
	}
	data, err := os.ReadFile(filepath.Join("/sys/block", dev, "removable"))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}

// blockDeviceFor resolves the sysfs block device name (e.g. "sda", "nvme0n1")
// backing the mount containing path, by matching /proc/mounts entries.
func blockDeviceFor(path string) string {
	root := mountRoot(path)

	f, err := os.Open("/proc/mounts")
	if err != nil {
		return ""
	}
	defer f.Close()

	best := ""
	bestLen := -1
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		device, mountPoint := fields[0], fields[1]
		if !strings.HasPrefix(root, mountPoint) {
			continue
		}
		if len(mountPoint) > bestLen {
			bestLen = len(mountPoint)
			best = device
		}
	}
	if best == "" || !strings.HasPrefix(best, "/dev/") {
		return ""
	}
	name := strings.TrimPrefix(best, "/dev/")
	return stripPartitionSuffix(name)
}

// stripPartitionSuffix maps a partition device name to its parent disk
// ("sda1" -> "sda", "nvme0n1p1" -> "nvme0n1").
func stripPartitionSuffix(name string) string {
	if strings.HasPrefix(name, "nvme") {
		if idx := strings.Index(name, "p"); idx > 0 {
			if _, err := os.Stat(filepath.Join("/sys/block", name[:idx])); err == nil {
				return name[:idx]
			}
		}
		return name
	}
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	candidate := name[:i]
	if candidate == "" {
		return name
	}
	return candidate
}
