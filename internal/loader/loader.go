// Package loader runs one-shot background work and hands its result to
// the first caller that needs it.
package loader

// Loader holds the result of a single background computation.
type Loader[T any] struct {
	done  chan struct{}
	value T
}

// Start runs work on its own goroutine and returns immediately.
func Start[T any](work func() T) *Loader[T] {
	l := &Loader[T]{done: make(chan struct{})}
	go func() {
		defer close(l.done)
		l.value = work()
	}()
	return l
}

// Get blocks until the work has finished and returns its result. Every
// call returns the same value; work never runs twice. There is no
// cancellation: if work never returns, neither does Get.
func (l *Loader[T]) Get() T {
	<-l.done
	return l.value
}

// Ready reports whether Get would return without blocking.
func (l *Loader[T]) Ready() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}
