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
	"time"

	gerrors "github.com/tochemey/minakt/errors"
)

// Tell sends an asynchronous message to an actor.
// It never waits for the message to be handled. It fails with ErrDead when
// the actor has terminated or is shutting down.
func Tell[M any](ctx context.Context, to *PID[M], message M) error {
	if to == nil {
		return gerrors.ErrDead
	}

	if !to.system.Running() {
		return gerrors.ErrActorSystemNotStarted
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if any(message) == nil {
		return gerrors.ErrInvalidMessage
	}

	return to.enqueue(message)
}

// Call sends a request built around a fresh ReplyPort and waits for the reply.
//
// Only the caller is suspended. Call returns:
//   - the reply when the actor answers in time
//   - ErrRequestTimeout when timeout elapses first
//   - ErrDead when the actor terminates before answering
//   - ctx.Err() when ctx is done first
//
// A reply arriving after Call returned is dropped.
func Call[M, R any](ctx context.Context, to *PID[M], build func(port *ReplyPort[R]) M, timeout time.Duration) (R, error) {
	var zero R
	if timeout <= 0 {
		return zero, gerrors.ErrInvalidTimeout
	}

	if build == nil {
		return zero, gerrors.ErrInvalidMessage
	}

	port := NewReplyPort[R]()
	if err := Tell(ctx, to, build(port)); err != nil {
		return zero, err
	}

	start := time.Now()
	defer func() {
		to.system.recordCall(ctx, time.Since(start))
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case reply := <-port.receive():
		return reply, nil
	case <-to.Terminated():
		// the actor may have replied right before terminating
		select {
		case reply := <-port.receive():
			return reply, nil
		default:
			port.abandon()
			return zero, gerrors.ErrDead
		}
	case <-timer.C:
		port.abandon()
		return zero, gerrors.ErrRequestTimeout
	case <-ctx.Done():
		port.abandon()
		return zero, ctx.Err()
	}
}
