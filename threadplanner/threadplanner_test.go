package threadplanner

import (
	"runtime"
	"testing"

	"github.com/coreforensics/hashcore/hashtypes"
)

func storage(dt hashtypes.DriveType) *hashtypes.StorageInfo {
	return &hashtypes.StorageInfo{DriveType: dt}
}

func TestPlanSingleFileAlwaysOne(t *testing.T) {
	if got := Plan(storage(hashtypes.DriveNVMe), storage(hashtypes.DriveNVMe), 1, Copy); got != 1 {
		t.Errorf("R0: expected 1 thread for single file, got %d", got)
	}
}

func TestPlanHashRules(t *testing.T) {
	c := runtime.NumCPU()
	cases := []struct {
		name   string
		source *hashtypes.StorageInfo
		want   int
	}{
		{"R1 no source profile", nil, min(4, c)},
		{"R2 HDD source", storage(hashtypes.DriveHDD), 8},
		{"R2 ExternalHDD source", storage(hashtypes.DriveExternalHDD), 8},
		{"R3 NVMe source", storage(hashtypes.DriveNVMe), cpuScaled()},
		{"R4 SSD source", storage(hashtypes.DriveSSD), cpuScaled()},
		{"R4 ExternalSSD source", storage(hashtypes.DriveExternalSSD), cpuScaled()},
		{"R5 unknown source", storage(hashtypes.DriveUnknown), min(4, c)},
	}
	for _, tc := range cases {
		if got := Plan(tc.source, nil, 10, Hash); got != tc.want {
			t.Errorf("%s: Plan() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestPlanCopyRules(t *testing.T) {
	cases := []struct {
		name         string
		source, dest *hashtypes.StorageInfo
		want         int
	}{
		{"R6 missing source", nil, storage(hashtypes.DriveNVMe), 1},
		{"R6 missing dest", storage(hashtypes.DriveNVMe), nil, 1},
		{"R7 HDD dest", storage(hashtypes.DriveSSD), storage(hashtypes.DriveHDD), 1},
		{"R8 HDD source, fast dest", storage(hashtypes.DriveHDD), storage(hashtypes.DriveSSD), 8},
		{"R9 HDD source, unknown dest", storage(hashtypes.DriveHDD), storage(hashtypes.DriveUnknown), 1},
		{"R10 NVMe to NVMe", storage(hashtypes.DriveNVMe), storage(hashtypes.DriveNVMe), cpuScaled()},
		{"R11 fast both, one NVMe", storage(hashtypes.DriveNVMe), storage(hashtypes.DriveSSD), 32},
		{"R12 fast both, no NVMe", storage(hashtypes.DriveSSD), storage(hashtypes.DriveExternalSSD), 16},
		{"R13 otherwise", storage(hashtypes.DriveUnknown), storage(hashtypes.DriveUnknown), 1},
	}
	for _, tc := range cases {
		if got := Plan(tc.source, tc.dest, 10, Copy); got != tc.want {
			t.Errorf("%s: Plan() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestExplainReturnsNonEmptyRationale(t *testing.T) {
	s := storage(hashtypes.DriveNVMe)
	if Explain(s, nil, 10, Hash) == "" {
		t.Fatal("Explain returned empty string")
	}
	if Explain(nil, nil, 1, Copy) == "" {
		t.Fatal("Explain returned empty string for single-file case")
	}
}
