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

// Metric is a point-in-time snapshot of the actor system counters
type Metric struct {
	actorsCount      int64
	processedCount   int64
	failuresCount    int64
	deadlettersCount int64
	panicsCount      int64
	uptime           int64
	busyWorkers      int64
	pendingActors    int64
}

// ActorsCount returns the number of live actors
func (m Metric) ActorsCount() int64 {
	return m.actorsCount
}

// ProcessedCount returns the total number of messages handled
func (m Metric) ProcessedCount() int64 {
	return m.processedCount
}

// FailuresCount returns the total number of domain errors returned by handlers
func (m Metric) FailuresCount() int64 {
	return m.failuresCount
}

// DeadlettersCount returns the total number of deadletter
func (m Metric) DeadlettersCount() int64 {
	return m.deadlettersCount
}

// PanicsCount returns the number of actors terminated by a panic
func (m Metric) PanicsCount() int64 {
	return m.panicsCount
}

// Uptime returns the number of seconds since the system started
func (m Metric) Uptime() int64 {
	return m.uptime
}

// BusyWorkers returns the number of workers running an actor
func (m Metric) BusyWorkers() int64 {
	return m.busyWorkers
}

// PendingActors returns the number of actors waiting for a free worker
func (m Metric) PendingActors() int64 {
	return m.pendingActors
}
