package hashengine

import (
	"fmt"
	"strings"
	"time"

	"github.com/coreforensics/hashcore/hashtypes"
)

// Summarize renders a human-readable summary line set for a completed
// VerificationReport: counts of exact/mismatch/missing and effective
// throughput. Report formatting only; no new semantics beyond what the
// report already carries.
func Summarize(report *VerificationReport) string {
	var exact, mismatch, missingTarget, missingSource int
	for _, outcome := range report.Outcomes {
		switch outcome.Kind {
		case hashtypes.ExactMatch:
			exact++
		case hashtypes.HashMismatch:
			mismatch++
		case hashtypes.MissingTarget:
			missingTarget++
		case hashtypes.MissingSource:
			missingSource++
		}
	}

	statusSymbol := "✓"
	status := "passed"
	if mismatch > 0 || missingTarget > 0 || missingSource > 0 {
		statusSymbol = "✗"
		status = "completed with differences"
	}

	lines := []string{
		fmt.Sprintf("%s Verification %s!", statusSymbol, status),
		fmt.Sprintf("  - Files verified: %d", len(report.Outcomes)),
		fmt.Sprintf("  - Matched: %d", exact),
	}
	if mismatch > 0 {
		lines = append(lines, fmt.Sprintf("  - Mismatched: %d", mismatch))
	}
	if missingTarget > 0 {
		lines = append(lines, fmt.Sprintf("  - Missing in target: %d", missingTarget))
	}
	if missingSource > 0 {
		lines = append(lines, fmt.Sprintf("  - Missing in source: %d", missingSource))
	}
	lines = append(lines,
		fmt.Sprintf("  - Duration: %s", formatDuration(report.WallClockSeconds)),
		fmt.Sprintf("  - Average speed: %.1f MB/s", report.EffectiveMBPS),
	)

	return strings.Join(lines, "\n")
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}
