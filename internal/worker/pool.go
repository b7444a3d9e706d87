// Package worker offloads blocking I/O so request goroutines are never
// tied up by slow disk copies or remote uploads.
package worker

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of blocking jobs running at once.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a pool allowing up to size concurrent jobs. size must
// be at least 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Do runs fn on its own goroutine once a pool slot is free and returns
// fn's error. Waiting for a slot is cancellable through ctx; once fn has
// started, Do returns as soon as fn finishes or ctx is cancelled,
// whichever comes first. fn itself is responsible for honoring ctx if it
// supports early abort.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer p.sem.Release(1)
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
