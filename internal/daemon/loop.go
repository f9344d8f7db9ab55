package daemon

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Do once the loop has exited.
var ErrStopped = errors.New("frame is shutting down")

// Loop serializes work from other goroutines onto the X event loop. X
// callbacks run between the before and after pings of xevent.MainPing; calls
// posted here run only while no callback is in flight, so the manager never
// sees concurrent access.
type Loop struct {
	calls    chan func()
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewLoop() *Loop {
	return &Loop{
		calls: make(chan func()),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Run pumps the ping channels and posted calls until ctx is cancelled, Stop
// is called or the event loop reports quit.
func (l *Loop) Run(ctx context.Context, before, after, quit <-chan struct{}) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		case <-quit:
			return
		case <-before:
			<-after
		case fn := <-l.calls:
			fn()
		}
	}
}

// Stop makes Run return after the current callback or call. It is safe to
// call from inside a callback and more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Done is closed when Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Do runs fn on the loop and returns its error.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	res := make(chan error, 1)
	call := func() { res <- fn() }
	select {
	case l.calls <- call:
	case <-l.done:
		return ErrStopped
	case <-l.stop:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
