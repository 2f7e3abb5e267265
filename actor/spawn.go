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
	"time"

	"github.com/flowchartsman/retry"
	"github.com/google/uuid"

	gerrors "github.com/tochemey/minakt/errors"
	"github.com/tochemey/minakt/internal/registry"
)

// Spawn creates and starts a new actor.
//
// An empty name spawns an anonymous actor reachable only through the returned PID.
// A non-empty name is registered process-wide and fails with ErrActorAlreadyExists
// when a live actor already holds it. When the previous holder is terminating,
// Spawn waits for its termination before taking the name over.
func Spawn[M, A, S any](ctx context.Context, system ActorSystem, name string, actor Actor[M, A, S], args A) (*PID[M], error) {
	if system == nil {
		return nil, gerrors.ErrActorSystemNotStarted
	}

	sys := system.internal()
	if !sys.beginSpawn() {
		return nil, gerrors.ErrActorSystemNotStarted
	}
	defer sys.endSpawn()

	if name != "" {
		if existing, ok := sys.registry.Get(name); ok && existing.IsRunning() {
			return nil, gerrors.NewErrActorAlreadyExists(name)
		}
	}

	pid := newPID[M](uuid.NewString(), name, sys)
	state, err := initActor(ctx, sys, pid, actor, args)
	if err != nil {
		return nil, err
	}

	pid.receive = func(rctx *ReceiveContext[M]) error {
		return actor.Receive(rctx, state)
	}
	pid.postStop = func(c *Context) error {
		return actor.PostStop(c, state)
	}

	pid.start()
	if name != "" {
		if err := sys.claim(ctx, name, pid); err != nil {
			pid.closeMailbox()
			pid.running.Store(false)
			if perr := pid.postStop(newContext(ctx, pid.id, name, sys)); perr != nil {
				sys.logger.Errorf("Actor %s PostStop failed: %v", name, perr)
			}
			return nil, err
		}
	}

	sys.onStarted(pid)
	return pid, nil
}

// WhereIs returns the live actor registered under name.
// It reports false when no live actor holds the name or when the actor
// accepts another message type.
func WhereIs[M any](system ActorSystem, name string) (*PID[M], bool) {
	if system == nil || name == "" {
		return nil, false
	}

	p, ok := system.internal().registry.Get(name)
	if !ok || !p.IsRunning() {
		return nil, false
	}

	pid, ok := p.(*PID[M])
	return pid, ok
}

// LookupOrSpawn returns the live actor registered under name, spawning it
// with args when there is none. Concurrent callers asking for the same name
// all get the same actor.
func LookupOrSpawn[M, A, S any](ctx context.Context, system ActorSystem, name string, actor Actor[M, A, S], args A) (*PID[M], error) {
	if system == nil {
		return nil, gerrors.ErrActorSystemNotStarted
	}

	if name == "" {
		return nil, gerrors.ErrNameRequired
	}

	sys := system.internal()
	for {
		if pid, ok := WhereIs[M](system, name); ok {
			return pid, nil
		}

		if existing, ok := sys.registry.Get(name); ok && existing.IsRunning() {
			// the name is held by an actor of another kind
			return nil, gerrors.NewErrActorAlreadyExists(name)
		}

		p, err := sys.registry.Do(name, func() (process, error) {
			pid, err := Spawn(ctx, system, name, actor, args)
			if err != nil {
				return nil, err
			}
			return pid, nil
		})

		switch {
		case err == nil:
			if pid, ok := p.(*PID[M]); ok {
				return pid, nil
			}
			return nil, gerrors.NewErrActorAlreadyExists(name)
		case errors.Is(err, gerrors.ErrActorAlreadyExists):
			// another caller registered the name first
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		default:
			return nil, err
		}
	}
}

// Via builds the "<kind>/<identifier>" registry name
func Via(kind, id string) string {
	return registry.Key(kind, id)
}

// Name builds the registry name of an actor kind instance using the
// lower-cased Go type name of actor as kind.
func Name(actor any, id string) string {
	return registry.Key(registry.Kind(actor), id)
}

// initActor runs PreStart with retries and returns the initial state
func initActor[M, A, S any](ctx context.Context, sys *actorSystem, pid *PID[M], actor Actor[M, A, S], args A) (S, error) {
	sys.logger.Debugf("Initialization process started for Actor %s ...", pid.String())

	var state S
	initContext := newContext(ctx, pid.id, pid.name, sys)

	cctx, cancel := context.WithTimeout(ctx, sys.actorInitTimeout)
	defer cancel()

	retrier := retry.NewRetrier(sys.actorInitMaxRetries, time.Millisecond, sys.actorInitTimeout)
	if err := retrier.RunContext(cctx, func(_ context.Context) error {
		s, err := actor.PreStart(initContext, args)
		if err != nil {
			return err
		}
		state = s
		return nil
	}); err != nil {
		sys.logger.Errorf("Failed to initialize Actor %s: %v", pid.String(), err)
		return state, gerrors.NewErrInitFailure(err)
	}

	sys.logger.Debugf("Actor %s initialization is successful.", pid.String())
	return state, nil
}
