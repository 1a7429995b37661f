package hashengine

import "github.com/coreforensics/hashcore/hashtypes"

// HashOptions configures a HashFiles or Verify call.
type HashOptions struct {
	// EnableParallel defaults to true when the zero value is used via
	// DefaultHashOptions; callers constructing HashOptions directly should
	// set it explicitly.
	EnableParallel bool

	// MaxWorkersOverride, when non-nil, skips Storage Profiler consultation
	// entirely and uses this worker count verbatim.
	MaxWorkersOverride *uint32

	// Progress receives (percent, message) updates. May be called from any
	// worker goroutine.
	Progress hashtypes.ProgressCallback

	Cancel hashtypes.CancelToken
	Pause  hashtypes.PauseToken
}

// DefaultHashOptions returns the zero-configuration default: parallel
// enabled, no override, no progress/cancel/pause hooks.
func DefaultHashOptions() HashOptions {
	return HashOptions{EnableParallel: true}
}

func (o HashOptions) reportProgress(percent uint8, message string) {
	if o.Progress != nil {
		o.Progress(percent, message)
	}
}

func (o HashOptions) isCancelled() bool {
	return o.Cancel != nil && o.Cancel.IsSet()
}
