package ui

import (
	"context"
	"sync"
)

const defaultQueueSize = 16

// Loop serializes work onto a single goroutine, the owner of the display surface.
type Loop struct {
	queue     chan func()
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	runOnce   sync.Once
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Loop{
		queue: make(chan func(), queueSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Post schedules fn on the loop goroutine. It reports false once the loop is closed;
// work queued just before Close may be dropped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.stop:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.stop:
		return false
	}
}

// Run drains posted work until ctx is done or Close is called. Only the first call runs.
// On return the loop is closed, so later Posts report false.
func (l *Loop) Run(ctx context.Context) {
	started := false
	l.runOnce.Do(func() { started = true })
	if !started {
		return
	}
	defer l.Close()
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Close stops the loop. A loop that never ran is marked done immediately.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.stop) })
	l.runOnce.Do(func() { close(l.done) })
}

// Done is closed when Run returns, or on Close if Run never started.
// Work still queued at that point is never run.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
