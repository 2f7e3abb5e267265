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
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/minakt/errors"
)

// ReplyPort is a single-use channel carrying the answer of a Call.
//
// Exactly one value can be sent. A second Send fails with ErrReplyAlreadySent.
// A Send after the caller stopped waiting succeeds and the value is dropped.
type ReplyPort[R any] struct {
	value     chan R
	sent      *atomic.Bool
	abandoned *atomic.Bool
}

// NewReplyPort creates a ReplyPort
func NewReplyPort[R any]() *ReplyPort[R] {
	return &ReplyPort[R]{
		value:     make(chan R, 1),
		sent:      atomic.NewBool(false),
		abandoned: atomic.NewBool(false),
	}
}

// Send delivers the reply. It never blocks.
func (p *ReplyPort[R]) Send(value R) error {
	if !p.sent.CompareAndSwap(false, true) {
		return gerrors.ErrReplyAlreadySent
	}
	if p.abandoned.Load() {
		return nil
	}
	p.value <- value
	return nil
}

// Abandoned reports whether the caller stopped waiting for the reply
func (p *ReplyPort[R]) Abandoned() bool {
	return p.abandoned.Load()
}

func (p *ReplyPort[R]) receive() <-chan R {
	return p.value
}

func (p *ReplyPort[R]) abandon() {
	p.abandoned.Store(true)
}

// Reply sends value on port and logs a failed attempt with the actor name.
func Reply[M, R any](rctx *ReceiveContext[M], port *ReplyPort[R], value R) {
	if port == nil {
		rctx.Logger().Warnf("Actor %s replied on a nil port", rctx.Self().String())
		return
	}
	if err := port.Send(value); err != nil {
		rctx.Logger().Warnf("Actor %s failed to reply: %v", rctx.Self().String(), err)
	}
}
