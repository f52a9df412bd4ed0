package realtime

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLoopRunning is returned by Run when the loop is already active.
var ErrLoopRunning = errors.New("realtime: loop already running")

// TickFunc is called by Loop.Run to advance state. It returns the next wake
// time and the events to publish; stop true means exit the loop.
type TickFunc[E any] func(now time.Time) (next time.Time, events []E, stop bool)

// Loop drives a TickFunc on a timer and fans its events out through a Broadcaster.
type Loop[E any] struct {
	hub *Broadcaster[E]
	now func() time.Time

	mu      sync.Mutex
	running bool
}

// NewLoop creates a loop publishing to hub. now supplies the time passed to
// each tick; nil means time.Now.
func NewLoop[E any](hub *Broadcaster[E], now func() time.Time) *Loop[E] {
	if now == nil {
		now = time.Now
	}
	return &Loop[E]{hub: hub, now: now}
}

// Run blocks, calling tick until it asks to stop or ctx is cancelled.
func (l *Loop[E]) Run(ctx context.Context, tick TickFunc[E]) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrLoopRunning
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	for {
		now := l.now()
		next, events, stop := tick(now)
		if stop {
			return nil
		}
		// Publish immediately so subscribers see the new state before the next wait.
		if l.hub != nil {
			for _, e := range events {
				l.hub.Publish(e)
			}
		}
		wait := next.Sub(now)
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Running reports whether Run is active.
func (l *Loop[E]) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}
