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

// Actor represents the interface an actor kind implements to process messages.
//
// M is the message type the actor accepts, A the arguments used to build its
// initial state and S the private state. S is normally a pointer so that
// Receive mutates it in place.
//
// The runtime guarantees that for a given actor at most one of these methods
// runs at any instant.
type Actor[M, A, S any] interface {
	// PreStart builds the initial state from the spawn arguments.
	// A returned error is retried according to the system init settings;
	// when every attempt fails the spawn fails and the actor never runs.
	PreStart(ctx *Context, args A) (S, error)
	// Receive handles one message. A returned error is a domain error: it is
	// logged and counted, and the actor carries on with the next message.
	// A panic terminates the actor.
	Receive(ctx *ReceiveContext[M], state S) error
	// PostStop runs exactly once when the actor terminates.
	PostStop(ctx *Context, state S) error
}
