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

import "time"

const eventsTopic = "topic.events.0"

// ActorStarted is published when an actor has been spawned and is running
type ActorStarted struct {
	ID        string
	Name      string
	StartedAt time.Time
}

// ActorStopped is published when an actor has terminated normally
type ActorStopped struct {
	ID        string
	Name      string
	StoppedAt time.Time
}

// ActorPanicked is published when an actor is terminated by a panic
type ActorPanicked struct {
	ID         string
	Name       string
	Reason     error
	PanickedAt time.Time
}

// Deadletter is published for every message an actor could not handle
// because it terminated first.
type Deadletter struct {
	ID        string
	Name      string
	Message   any
	DroppedAt time.Time
}
