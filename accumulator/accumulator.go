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

// Package accumulator implements an actor folding arithmetic commands over
// an integer value.
//
// Every command is first validated against the current state into an event,
// then the event is applied. A rejected command leaves the value unchanged.
package accumulator

import (
	"context"
	"errors"
	"time"

	"github.com/tochemey/minakt/actor"
	gerrors "github.com/tochemey/minakt/errors"
)

// ErrDivisionByZero is returned for a Div command with a zero value
var ErrDivisionByZero = errors.New("division by zero")

// Command is a request handled by the accumulator
type Command interface {
	isCommand()
}

// Add adds Value to the accumulator
type Add struct{ Value int64 }

// Sub subtracts Value from the accumulator
type Sub struct{ Value int64 }

// Mul multiplies the accumulator by Value
type Mul struct{ Value int64 }

// Div divides the accumulator by Value, truncating toward zero
type Div struct{ Value int64 }

// GetValue asks the accumulator for its current value
type GetValue struct {
	Port *actor.ReplyPort[int64]
}

func (Add) isCommand()      {}
func (Sub) isCommand()      {}
func (Mul) isCommand()      {}
func (Div) isCommand()      {}
func (GetValue) isCommand() {}

// Event is the validated outcome of a command
type Event interface {
	isEvent()
}

type DidAdd struct{ Value int64 }
type DidSub struct{ Value int64 }
type DidMul struct{ Value int64 }
type DidDiv struct{ Value int64 }

func (DidAdd) isEvent() {}
func (DidSub) isEvent() {}
func (DidMul) isEvent() {}
func (DidDiv) isEvent() {}

// State is the accumulator state
type State struct {
	Value int64
}

// Decide validates command against the state and returns the resulting event
func (s *State) Decide(command Command) (Event, error) {
	switch c := command.(type) {
	case Add:
		return DidAdd(c), nil
	case Sub:
		return DidSub(c), nil
	case Mul:
		return DidMul(c), nil
	case Div:
		if c.Value == 0 {
			return nil, ErrDivisionByZero
		}
		return DidDiv(c), nil
	default:
		return nil, gerrors.ErrUnhandled
	}
}

// Apply applies event to the state
func (s *State) Apply(event Event) {
	switch e := event.(type) {
	case DidAdd:
		s.Value += e.Value
	case DidSub:
		s.Value -= e.Value
	case DidMul:
		s.Value *= e.Value
	case DidDiv:
		s.Value /= e.Value
	}
}

// Accumulator is the actor. It is spawned with its initial value.
type Accumulator struct{}

var _ actor.Actor[Command, int64, *State] = (*Accumulator)(nil)

// New creates an Accumulator
func New() *Accumulator {
	return &Accumulator{}
}

// PreStart creates the state holding initial
func (a *Accumulator) PreStart(_ *actor.Context, initial int64) (*State, error) {
	return &State{Value: initial}, nil
}

// Receive handles a command
func (a *Accumulator) Receive(ctx *actor.ReceiveContext[Command], state *State) error {
	if query, ok := ctx.Message().(GetValue); ok {
		actor.Reply(ctx, query.Port, state.Value)
		return nil
	}

	event, err := state.Decide(ctx.Message())
	if err != nil {
		return err
	}

	state.Apply(event)
	ctx.Logger().Debugf("event: %#v, state: %+v", event, *state)
	return nil
}

// PostStop logs the final value
func (a *Accumulator) PostStop(ctx *actor.Context, state *State) error {
	ctx.Logger().Debugf("Accumulator %s stopped at %d", ctx.ActorID(), state.Value)
	return nil
}

// Value returns the current value of the accumulator
func Value(ctx context.Context, pid *actor.PID[Command], timeout time.Duration) (int64, error) {
	return actor.Call(ctx, pid, func(port *actor.ReplyPort[int64]) Command {
		return GetValue{Port: port}
	}, timeout)
}
