//go:build windows

package storageprofiler

import (
	"syscall"
	"unsafe"
)

const (
	driveRemovable = 2
)

var (
	kernel32         = syscall.NewLazyDLL("kernel32.dll")
	procGetDriveType = kernel32.NewProc("GetDriveTypeW")
)

// isRemovable calls GetDriveType, matching the original detector's Windows
// removable-media check.
func isRemovable(path string) bool {
	root := mountRoot(path)
	ptr, err := syscall.UTF16PtrFromString(root)
	if err != nil {
		return false
	}
	ret, _, _ := procGetDriveType.Call(uintptr(unsafe.Pointer(ptr)))
	return ret == driveRemovable
}
