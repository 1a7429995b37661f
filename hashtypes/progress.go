package hashtypes

// Progress is the (percent, message) pair a ProgressCallback receives.
// Percent is in [0, 100].
type Progress struct {
	Percent uint8
	Message string
}

// ProgressCallback may be invoked from any worker goroutine; implementations
// must be safe for concurrent invocation.
type ProgressCallback func(percent uint8, message string)

// CancelToken is a read-only view of external cooperative-cancellation
// state, checked between I/O operations, never inside a digest update.
type CancelToken interface {
	IsSet() bool
}

// PauseToken blocks the calling goroutine while paused, returning once
// resumed or when ctx-equivalent cancellation makes further waiting moot.
type PauseToken interface {
	WaitIfPaused()
}

// Semaphore bounds concurrent access to a resource, adapted from the
// teacher's internal/types.Semaphore.
type Semaphore chan struct{}

// NewSemaphore creates a semaphore allowing up to n concurrent holders.
func NewSemaphore(n int) Semaphore {
	return make(Semaphore, n)
}

// Acquire blocks until a slot is available.
func (s Semaphore) Acquire() {
	s <- struct{}{}
}

// Release frees a slot.
func (s Semaphore) Release() {
	<-s
}
