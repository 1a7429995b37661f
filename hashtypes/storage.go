package hashtypes

import "fmt"

// DriveType classifies a filesystem path's backing device.
type DriveType int

const (
	DriveUnknown DriveType = iota
	DriveNVMe
	DriveSSD
	DriveExternalSSD
	DriveHDD
	DriveExternalHDD
	DriveNetwork
)

func (d DriveType) String() string {
	switch d {
	case DriveNVMe:
		return "nvme"
	case DriveSSD:
		return "ssd"
	case DriveExternalSSD:
		return "external_ssd"
	case DriveHDD:
		return "hdd"
	case DriveExternalHDD:
		return "external_hdd"
	case DriveNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// IsRotationalClass reports whether the drive type is one of the two HDD
// classes, the condition the Thread Planner keys parallelism decisions on.
func (d DriveType) IsRotationalClass() bool {
	return d == DriveHDD || d == DriveExternalHDD
}

// IsFastClass reports whether the drive type is NVMe or an SSD variant.
func (d DriveType) IsFastClass() bool {
	return d == DriveNVMe || d == DriveSSD || d == DriveExternalSSD
}

// BusType mirrors the Windows STORAGE_BUS_TYPE enumeration. It is carried
// as opaque audit metadata except where a detector sets it explicitly.
type BusType int

const (
	BusUnknown BusType = iota
	BusSCSI
	BusATAPI
	BusATA
	BusIEEE1394
	BusSSA
	BusFibreChannel
	BusUSB
	BusRAID
	BusISCSI
	BusSAS
	BusSATA
	BusSD
	BusMMC
	BusVirtual
	BusFileBackedVirtual
	BusSpaces
	BusNVMe
	BusSCM
)

func (b BusType) String() string {
	names := [...]string{
		"unknown", "scsi", "atapi", "ata", "ieee1394", "ssa", "fibre_channel",
		"usb", "raid", "iscsi", "sas", "sata", "sd", "mmc", "virtual",
		"file_backed_virtual", "spaces", "nvme", "scm",
	}
	if int(b) < 0 || int(b) >= len(names) {
		return "unknown"
	}
	return names[b]
}

// StorageInfo is the Storage Profiler's immutable verdict about a path's
// backing device.
type StorageInfo struct {
	DriveType          DriveType
	BusType            BusType
	IsSSD              *bool // nil = unknown, distinct from false
	IsRemovable        bool
	RecommendedThreads uint32
	Confidence         float32 // [0.0, 1.0]
	DetectionMethod    string
	DriveLetter        string // drive letter on Windows, mount root elsewhere
	PerformanceClass   uint8  // [1,5]
}

func (s StorageInfo) String() string {
	ssd := "unknown"
	if s.IsSSD != nil {
		if *s.IsSSD {
			ssd = "SSD"
		} else {
			ssd = "HDD"
		}
	}
	removable := ""
	if s.IsRemovable {
		removable = " (external)"
	}
	return fmt.Sprintf("%s%s on %s [%s] -> %d threads (confidence %.0f%%)",
		ssd, removable, s.DriveLetter, s.BusType, s.RecommendedThreads, s.Confidence*100)
}

// BoolPtr is a small helper for constructing StorageInfo.IsSSD literals.
func BoolPtr(b bool) *bool { return &b }

// ConservativeFallback is the Storage Profiler's last-resort verdict:
// never over-parallelize an unidentified device.
func ConservativeFallback(driveLetter, reason string) StorageInfo {
	return StorageInfo{
		DriveType:          DriveExternalHDD,
		BusType:            BusUnknown,
		IsSSD:              BoolPtr(false),
		IsRemovable:        true,
		RecommendedThreads: 1,
		Confidence:         0.0,
		DetectionMethod:    "conservative_fallback:" + reason,
		DriveLetter:        driveLetter,
		PerformanceClass:   1,
	}
}
