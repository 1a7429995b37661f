//go:build windows

package storageprofiler

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/coreforensics/hashcore/hashtypes"
)

const (
	ioctlStorageQueryProperty = 0x2d1400
	storageDeviceSeekPenalty  = 7
	propertyStandardQuery     = 0

	fileShareRead  = 0x00000001
	fileShareWrite = 0x00000002
	openExisting   = 3
)

type storagePropertyQuery struct {
	PropertyID uint32
	QueryType  uint32
	Flags      [8]byte
}

type deviceSeekPenaltyDescriptor struct {
	Version            uint32
	Size                uint32
	IncursSeekPenalty   byte
	_                   [3]byte
}

// detectSeekPenalty issues the StorageDeviceSeekPenaltyProperty IOCTL
// against the volume root. A clean reply of "no seek penalty" indicates
// solid-state media; "has seek penalty" indicates rotational media.
func detectSeekPenalty(driveLetter string) (hashtypes.StorageInfo, bool, string) {
	volumePath := fmt.Sprintf(`\\.\%s`, driveLetter)
	pathPtr, err := syscall.UTF16PtrFromString(volumePath)
	if err != nil {
		return hashtypes.StorageInfo{}, false, "invalid_volume_path"
	}

	handle, err := syscall.CreateFile(pathPtr, 0, fileShareRead|fileShareWrite, nil, openExisting, 0, 0)
	if err != nil {
		return hashtypes.StorageInfo{}, false, "open_volume_failed"
	}
	defer syscall.CloseHandle(handle)

	query := storagePropertyQuery{PropertyID: storageDeviceSeekPenalty, QueryType: propertyStandardQuery}
	var desc deviceSeekPenaltyDescriptor
	var bytesReturned uint32

	err = syscall.DeviceIoControl(
		handle,
		ioctlStorageQueryProperty,
		(*byte)(unsafe.Pointer(&query)),
		uint32(unsafe.Sizeof(query)),
		(*byte)(unsafe.Pointer(&desc)),
		uint32(unsafe.Sizeof(desc)),
		&bytesReturned,
		nil,
	)
	if err != nil {
		return hashtypes.StorageInfo{}, false, "ioctl_error"
	}

	isSSD := desc.IncursSeekPenalty == 0
	driveType := hashtypes.DriveSSD
	if !isSSD {
		driveType = hashtypes.DriveHDD
	}

	return hashtypes.StorageInfo{
		DriveType:          driveType,
		BusType:            hashtypes.BusUnknown,
		IsSSD:              hashtypes.BoolPtr(isSSD),
		RecommendedThreads: 8,
		Confidence:         0.8,
		DetectionMethod:    "seek_penalty",
		DriveLetter:        driveLetter,
		PerformanceClass:   3,
	}, true, ""
}
