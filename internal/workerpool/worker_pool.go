// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package workerpool provides a fixed-size pool of goroutines that execute
// tasks pulled from a shared ready queue.
package workerpool

import (
	"errors"
	"runtime"
	"sync"

	gods "github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"
)

// ErrPoolNotRunning is returned when a task is submitted to a pool that is
// not started or already stopped.
var ErrPoolNotRunning = errors.New("worker pool is not running")

// Task is a unit of work executed by a worker.
type Task interface {
	Run()
}

// WorkerPool runs submitted tasks on a fixed number of goroutines.
// Tasks are executed in submission order by whichever worker is free.
type WorkerPool struct {
	workers int
	hint    int64
	queue   *gods.Queue
	wg      sync.WaitGroup
	mu      sync.Mutex
	started atomic.Bool
	stopped atomic.Bool
	busy    atomic.Int64
}

// New creates a new worker pool with the given options.
// The pool defaults to runtime.NumCPU() workers.
func New(opts ...Option) *WorkerPool {
	wp := &WorkerPool{
		workers: runtime.NumCPU(),
		hint:    256,
	}
	for _, opt := range opts {
		opt.Apply(wp)
	}
	return wp
}

// Start spawns the workers. Calling Start more than once has no effect.
func (wp *WorkerPool) Start() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.started.Load() || wp.stopped.Load() {
		return
	}

	wp.queue = gods.New(wp.hint)
	wp.wg.Add(wp.workers)
	for range wp.workers {
		go wp.work()
	}
	wp.started.Store(true)
}

// Submit schedules the task on the next free worker
func (wp *WorkerPool) Submit(task Task) error {
	if !wp.started.Load() || wp.stopped.Load() {
		return ErrPoolNotRunning
	}
	if err := wp.queue.Put(task); err != nil {
		return ErrPoolNotRunning
	}
	return nil
}

// Stop releases the workers and waits for in-flight tasks to complete.
// Tasks still waiting in the queue are discarded.
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	if !wp.started.Load() || wp.stopped.Load() {
		wp.mu.Unlock()
		return
	}
	wp.stopped.Store(true)
	wp.queue.Dispose()
	wp.mu.Unlock()
	wp.wg.Wait()
}

// Workers returns the number of workers
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Busy returns the number of workers currently executing a task
func (wp *WorkerPool) Busy() int64 {
	return wp.busy.Load()
}

// Pending returns the number of tasks waiting for a worker
func (wp *WorkerPool) Pending() int64 {
	if !wp.started.Load() {
		return 0
	}
	return wp.queue.Len()
}

func (wp *WorkerPool) work() {
	defer wp.wg.Done()
	for {
		items, err := wp.queue.Get(1)
		if err != nil {
			return
		}

		for _, item := range items {
			task, ok := item.(Task)
			if !ok {
				continue
			}
			wp.busy.Inc()
			task.Run()
			wp.busy.Dec()
		}
	}
}
