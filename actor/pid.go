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

package actor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/minakt/errors"
	"github.com/tochemey/minakt/internal/workerpool"
	"github.com/tochemey/minakt/log"
)

const (
	idle int32 = iota
	busy
)

// process is the message-type agnostic view of a PID used by the
// actor system to manage actors of any kind.
type process interface {
	ID() string
	Name() string
	String() string
	IsRunning() bool
	Terminated() <-chan struct{}
	Drain(ctx context.Context) error
	Stop(ctx context.Context) error
	MailboxSize() int64
	ProcessedCount() int64
	requestStop()
	forceTerminate()
}

// PID is the typed handle of a running actor.
//
// A PID is only a reference: holding it does not keep the actor alive.
// Once the actor terminates every send through the PID fails with ErrDead.
type PID[M any] struct {
	id     string
	name   string
	system *actorSystem
	logger log.Logger

	mailbox    Mailbox[M]
	receive    func(*ReceiveContext[M]) error
	postStop   func(*Context) error
	throughput int

	// mu guards accepting. Senders hold the read lock while enqueuing so that
	// no message slips in once termination has begun.
	mu        sync.RWMutex
	accepting bool

	processing    *atomic.Int32
	running       *atomic.Bool
	draining      *atomic.Bool
	stopping      *atomic.Bool
	terminated    chan struct{}
	terminateOnce sync.Once

	processedCount *atomic.Int64
	failuresCount  *atomic.Int64
	startedAt      *atomic.Time
}

// enforce compilation error
var (
	_ process         = (*PID[any])(nil)
	_ workerpool.Task = (*PID[any])(nil)
)

func newPID[M any](id, name string, system *actorSystem) *PID[M] {
	return &PID[M]{
		id:             id,
		name:           name,
		system:         system,
		logger:         system.logger,
		mailbox:        NewUnboundedMailbox[M](),
		throughput:     system.throughput,
		processing:     atomic.NewInt32(idle),
		running:        atomic.NewBool(false),
		draining:       atomic.NewBool(false),
		stopping:       atomic.NewBool(false),
		terminated:     make(chan struct{}),
		processedCount: atomic.NewInt64(0),
		failuresCount:  atomic.NewInt64(0),
		startedAt:      atomic.NewTime(time.Time{}),
	}
}

// ID returns the unique identifier of the actor
func (x *PID[M]) ID() string {
	return x.id
}

// Name returns the registered name of the actor. Anonymous actors have an empty name.
func (x *PID[M]) Name() string {
	return x.name
}

// String returns the name of the actor or its id when anonymous
func (x *PID[M]) String() string {
	if x.name != "" {
		return x.name
	}
	return x.id
}

// IsRunning reports whether the actor accepts and processes messages
func (x *PID[M]) IsRunning() bool {
	return x.running.Load()
}

// Terminated returns a channel closed once the actor has terminated
func (x *PID[M]) Terminated() <-chan struct{} {
	return x.terminated
}

// MailboxSize returns the number of messages waiting to be handled
func (x *PID[M]) MailboxSize() int64 {
	return x.mailbox.Len()
}

// ProcessedCount returns the number of messages handled so far
func (x *PID[M]) ProcessedCount() int64 {
	return x.processedCount.Load()
}

// FailuresCount returns the number of domain errors returned by the handler
func (x *PID[M]) FailuresCount() int64 {
	return x.failuresCount.Load()
}

// Uptime returns the number of seconds since the actor started
func (x *PID[M]) Uptime() int64 {
	if !x.IsRunning() {
		return 0
	}
	return int64(time.Since(x.startedAt.Load()).Seconds())
}

// ActorSystem returns the actor system hosting the actor
func (x *PID[M]) ActorSystem() ActorSystem {
	return x.system
}

// Drain stops accepting new messages, handles everything already enqueued and
// terminates the actor. It waits for termination or for ctx to be done.
func (x *PID[M]) Drain(ctx context.Context) error {
	x.closeMailbox()
	x.draining.Store(true)
	x.schedule()
	return x.await(ctx)
}

// Stop terminates the actor once the in-flight message, if any, is handled.
// Messages still in the mailbox become dead letters. It waits for termination
// or for ctx to be done.
func (x *PID[M]) Stop(ctx context.Context) error {
	x.requestStop()
	x.schedule()
	return x.await(ctx)
}

func (x *PID[M]) requestStop() {
	x.closeMailbox()
	x.stopping.Store(true)
}

// forceTerminate terminates the actor on the calling goroutine.
// It must only be called once no worker can run the actor anymore.
func (x *PID[M]) forceTerminate() {
	if x.IsRunning() {
		x.logger.Warnf("Actor %s terminated without a worker", x.String())
	}
	x.requestStop()
	x.terminate(nil)
}

func (x *PID[M]) closeMailbox() {
	x.mu.Lock()
	x.accepting = false
	x.mu.Unlock()
}

func (x *PID[M]) await(ctx context.Context) error {
	select {
	case <-x.terminated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// start opens the mailbox once the actor is initialized and registered
func (x *PID[M]) start() {
	x.startedAt.Store(time.Now())
	x.mu.Lock()
	x.accepting = true
	x.mu.Unlock()
	x.running.Store(true)
}

func (x *PID[M]) enqueue(message M) error {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if !x.accepting {
		return gerrors.NewErrDead(x.String())
	}
	if err := x.mailbox.Enqueue(message); err != nil {
		return errors.Join(gerrors.NewErrDead(x.String()), err)
	}
	x.schedule()
	return nil
}

// schedule hands the actor to the worker pool on the idle -> busy transition
func (x *PID[M]) schedule() {
	if x.processing.CompareAndSwap(idle, busy) {
		x.submit()
	}
}

func (x *PID[M]) submit() {
	if err := x.system.pool.Submit(x); err != nil {
		x.processing.Store(idle)
		x.logger.Warnf("Actor %s could not be scheduled: %v", x.String(), err)
	}
}

// Run handles up to throughput messages on the calling worker.
// It is invoked by the worker pool and must not be called directly.
func (x *PID[M]) Run() {
	for range x.throughput {
		if x.stopping.Load() {
			x.terminate(nil)
			return
		}

		message, ok := x.mailbox.Dequeue()
		if !ok {
			break
		}

		if err := x.handle(message); err != nil {
			x.terminate(err)
			return
		}
	}

	if x.stopping.Load() || (x.draining.Load() && x.mailbox.IsEmpty()) {
		x.terminate(nil)
		return
	}

	x.processing.Store(idle)

	// a message or a drain request may have arrived while the state was busy
	if (!x.mailbox.IsEmpty() || x.draining.Load() || x.stopping.Load()) &&
		x.processing.CompareAndSwap(idle, busy) {
		x.submit()
	}
}

// handle runs the handler for one message and returns a PanicError when it panics
func (x *PID[M]) handle(message M) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toPanicError(r)
		}
	}()

	rctx := newReceiveContext(context.Background(), x, message)
	if rerr := x.receive(rctx); rerr != nil {
		x.failuresCount.Inc()
		x.system.failuresCount.Inc()
		x.logger.Errorf("Actor %s failed to handle %T: %v", x.String(), message, rerr)
	}

	x.processedCount.Inc()
	x.system.processedCount.Inc()
	return nil
}

// terminate runs PostStop, releases the name and turns pending messages into dead letters.
// It runs at most once.
func (x *PID[M]) terminate(cause error) {
	x.terminateOnce.Do(func() {
		x.closeMailbox()
		x.running.Store(false)
		x.mailbox.Dispose()

		if cause != nil {
			x.logger.Errorf("Actor %s terminated by %v", x.String(), cause)
		}

		stopCtx := newContext(context.Background(), x.id, x.name, x.system)
		if err := x.postStop(stopCtx); err != nil {
			x.logger.Errorf("Actor %s PostStop failed: %v", x.String(), err)
		}

		x.system.removeProcess(x)

		for {
			message, ok := x.mailbox.Dequeue()
			if !ok {
				break
			}
			x.system.deadletter(x, message)
		}

		x.system.terminated(x, cause)
		close(x.terminated)
	})
}

// toPanicError enriches a recovered value with its location
func toPanicError(r any) error {
	pc, fn, line, _ := runtime.Caller(3)
	if err, ok := r.(error); ok {
		var pe *gerrors.PanicError
		if errors.As(err, &pe) {
			return pe
		}
		return gerrors.NewPanicError(fmt.Errorf("%w at %s[%s:%d]", err, runtime.FuncForPC(pc).Name(), fn, line))
	}
	return gerrors.NewPanicError(fmt.Errorf("%#v at %s[%s:%d]", r, runtime.FuncForPC(pc).Name(), fn, line))
}
