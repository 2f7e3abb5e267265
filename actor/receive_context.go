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

// ReceiveContext carries the message being handled along with the
// handle of the actor handling it.
type ReceiveContext[M any] struct {
	ctx     context.Context
	message M
	self    *PID[M]
}

func newReceiveContext[M any](ctx context.Context, self *PID[M], message M) *ReceiveContext[M] {
	return &ReceiveContext[M]{
		ctx:     ctx,
		message: message,
		self:    self,
	}
}

// Context returns the context the message is handled under
func (rctx *ReceiveContext[M]) Context() context.Context {
	return rctx.ctx
}

// Message returns the message being handled
func (rctx *ReceiveContext[M]) Message() M {
	return rctx.message
}

// Self returns the handle of the actor handling the message
func (rctx *ReceiveContext[M]) Self() *PID[M] {
	return rctx.self
}

// ActorSystem returns the actor system hosting the actor
func (rctx *ReceiveContext[M]) ActorSystem() ActorSystem {
	return rctx.self.system
}

// Logger returns the actor logger
func (rctx *ReceiveContext[M]) Logger() log.Logger {
	return rctx.self.logger
}

// Stop terminates the actor once the current message is handled.
// Messages still in the mailbox become dead letters.
func (rctx *ReceiveContext[M]) Stop() {
	rctx.self.requestStop()
}
