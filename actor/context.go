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

	"github.com/tochemey/minakt/log"
)

// Context is passed to the lifecycle hooks of an actor
type Context struct {
	ctx       context.Context
	actorName string
	actorID   string
	system    ActorSystem
	logger    log.Logger
}

func newContext(ctx context.Context, id, name string, system ActorSystem) *Context {
	return &Context{
		ctx:       ctx,
		actorID:   id,
		actorName: name,
		system:    system,
		logger:    system.Logger(),
	}
}

// Context returns the underlying context
func (c *Context) Context() context.Context {
	return c.ctx
}

// ActorName returns the name of the actor, empty for anonymous actors
func (c *Context) ActorName() string {
	return c.actorName
}

// ActorID returns the unique id of the actor
func (c *Context) ActorID() string {
	return c.actorID
}

// ActorSystem returns the actor system hosting the actor
func (c *Context) ActorSystem() ActorSystem {
	return c.system
}

// Logger returns the system logger
func (c *Context) Logger() log.Logger {
	return c.logger
}
