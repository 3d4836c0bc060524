// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
)

// Pool executes submitted tasks on a fixed number of goroutines.
//
// It bounds the concurrency of expensive operations such as 1:N descriptor
// scans: callers submit a closure and the pool runs it on one of its
// goroutines, so no more than size scans are in flight at any moment.
type Pool struct {
	size  int
	tasks chan func()

	once sync.Once
	wg   sync.WaitGroup
}

// NewPool creates a pool with the given number of worker goroutines.
// Sizes below one are clamped to one. The pool is inert until Run is called.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}

	return &Pool{
		size:  size,
		tasks: make(chan func()),
	}
}

// Run starts the pool's goroutines. Implements the Worker interface so a Pool
// can be started together with other background workers. Subsequent calls
// have no effect.
func (p *Pool) Run() {
	p.once.Do(func() {
		for i := 0; i < p.size; i++ {
			p.wg.Add(1)
			go func() {
				defer p.wg.Done()
				for task := range p.tasks {
					task()
				}
			}()
		}
	})
}

// Submit hands the task to an idle worker goroutine. It blocks until a worker
// accepts the task or ctx is done, in which case the ctx error is returned
// and the task is never executed.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting new tasks and waits for in-flight tasks to finish.
// Submit must not be called after Shutdown.
func (p *Pool) Shutdown() {
	close(p.tasks)
	p.wg.Wait()
}
