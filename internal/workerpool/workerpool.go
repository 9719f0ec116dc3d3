// Package workerpool runs a bounded number of edge-file workers
// concurrently and collects the first failure, adapted from the
// panic-recovering errgroup wrapper used throughout the reference
// corpus for bounded fan-out (spec §5).
package workerpool

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Pool runs a bounded number of jobs concurrently via errgroup.Group,
// recovering a panicking job into an error instead of crashing the
// whole batch.
type Pool struct {
	group *errgroup.Group
}

// New returns a Pool that runs at most limit jobs at once. limit <= 0
// means unbounded, matching errgroup.Group.SetLimit's own contract.
func New(limit int) *Pool {
	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}
	return &Pool{group: g}
}

// Go schedules f to run, queuing if the pool is at its limit.
func (p *Pool) Go(f func() error) {
	p.group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				debug.PrintStack()
				err = fmt.Errorf("panic occurred: %v", r)
			}
		}()
		return f()
	})
}

// Wait blocks until every scheduled job has returned, and returns the
// first non-nil error, if any.
func (p *Pool) Wait() error {
	return p.group.Wait()
}
