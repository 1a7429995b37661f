// Package cliprogress renders a progress.ThrottledSink's (percent, message)
// stream to a terminal bar, wrapping schollz/progressbar/v3 the way the
// teacher pack's internal/progress.Bar does.
package cliprogress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

const renderThrottle = 50 * time.Millisecond

// Bar wraps progressbar with enabled/disabled handling. All methods are
// no-ops when disabled, so callers don't need to branch on a --quiet flag.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New creates a 0-100 determinate progress bar. If enabled is false,
// returns a Bar whose methods are all no-ops.
func New(enabled bool) *Bar {
	if !enabled {
		return &Bar{}
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(renderThrottle),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(40),
	)
	return &Bar{bar: bar}
}

// Callback returns a ProgressCallback suitable for passing directly as
// HashOptions.Progress: it forwards a sink's throttled (percent, message)
// events straight to the terminal bar.
func (b *Bar) Callback() func(percent uint8, message string) {
	return func(percent uint8, message string) {
		if b.bar == nil {
			return
		}
		b.bar.Describe(message)
		_ = b.bar.Set(int(percent))
	}
}

// Finish completes the bar and prints a final confirmation line.
func (b *Bar) Finish(summary string) {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	fmt.Fprintln(os.Stderr, "✔ "+summary)
}
