// Package threadplanner is the single source of truth for parallelism
// decisions. No other component may choose a thread count on its own; every
// caller that wants to parallelize work asks Plan.
package threadplanner

import (
	"fmt"
	"runtime"

	"github.com/coreforensics/hashcore/hashtypes"
)

// OpKind distinguishes a copy operation (source -> dest, dest write speed
// matters) from a pure hash operation (source read speed only).
type OpKind int

const (
	Hash OpKind = iota
	Copy
)

func (k OpKind) String() string {
	if k == Copy {
		return "copy"
	}
	return "hash"
}

// clamp bounds n to [lo, hi].
func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func cpuScaled() int {
	return clamp(2*runtime.NumCPU(), 2, 64)
}

func fast(info *hashtypes.StorageInfo) bool {
	return info != nil && info.DriveType.IsFastClass()
}

func rotational(info *hashtypes.StorageInfo) bool {
	return info != nil && info.DriveType.IsRotationalClass()
}

// Plan computes the thread count for a batch operation. sourceInfo and
// destInfo may be nil when the profiler has no verdict for that side; for a
// pure Hash operation destInfo is always nil. Rules are evaluated in the
// fixed order below; the first match wins.
func Plan(sourceInfo, destInfo *hashtypes.StorageInfo, fileCount uint64, opKind OpKind) int {
	c := runtime.NumCPU()

	// R0: a single file is never worth parallelizing.
	if fileCount == 1 {
		return 1
	}

	if opKind == Hash {
		switch {
		case sourceInfo == nil: // R1
			return min(4, c)
		case rotational(sourceInfo): // R2
			return 8
		case sourceInfo.DriveType == hashtypes.DriveNVMe: // R3
			return cpuScaled()
		case fast(sourceInfo): // R4 (SSD / ExternalSSD)
			return cpuScaled()
		default: // R5
			return min(4, c)
		}
	}

	// Copy.
	switch {
	case sourceInfo == nil || destInfo == nil: // R6
		return 1
	case rotational(destInfo): // R7
		return 1
	case rotational(sourceInfo) && fast(destInfo): // R8
		return 8
	case rotational(sourceInfo): // R9 (dest unknown, not HDD, not fast)
		return 1
	case sourceInfo.DriveType == hashtypes.DriveNVMe && destInfo.DriveType == hashtypes.DriveNVMe: // R10
		return cpuScaled()
	case fast(sourceInfo) && fast(destInfo) &&
		(sourceInfo.DriveType == hashtypes.DriveNVMe || destInfo.DriveType == hashtypes.DriveNVMe): // R11
		return 32
	case fast(sourceInfo) && fast(destInfo): // R12
		return 16
	default: // R13
		return 1
	}
}

// Explain returns a human-readable rationale for the thread count Plan
// would choose for the same inputs, for CLI --explain-threads output. The
// text names the rule only for R0; otherwise it gives the thread count, the
// operation, the drive types and the CPU count.
func Explain(sourceInfo, destInfo *hashtypes.StorageInfo, fileCount uint64, opKind OpKind) string {
	threads := Plan(sourceInfo, destInfo, fileCount, opKind)

	if fileCount == 1 {
		return "1 thread (R0: single file)"
	}

	describe := func(info *hashtypes.StorageInfo) string {
		if info == nil {
			return "unknown"
		}
		return info.DriveType.String()
	}

	if opKind == Hash {
		return fmt.Sprintf("%d threads (hash, source=%s, %d CPUs)", threads, describe(sourceInfo), runtime.NumCPU())
	}
	return fmt.Sprintf("%d threads (copy, source=%s, dest=%s, %d CPUs)",
		threads, describe(sourceInfo), describe(destInfo), runtime.NumCPU())
}
