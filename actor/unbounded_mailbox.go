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
	"sync"
	"sync/atomic"

	gerrors "github.com/tochemey/minakt/errors"
)

type mailboxNode[M any] struct {
	next atomic.Pointer[mailboxNode[M]]
	data M
}

// UnboundedMailbox is the default unbounded, lock-free mailbox.
//
// Concurrency model:
//   - Multi-Producer, Single-Consumer (MPSC): many goroutines may call Enqueue concurrently,
//     but exactly one goroutine must call Dequeue.
//
// Characteristics:
// - FIFO ordering across all producers.
// - Lock-free operations via atomic pointer primitives.
// - Nodes are recycled through a sync.Pool.
// - IsEmpty and Len are O(1).
type UnboundedMailbox[M any] struct {
	head     atomic.Pointer[mailboxNode[M]] // consumer only
	_pad1    [64]byte
	tail     atomic.Pointer[mailboxNode[M]] // producers only
	_pad2    [64]byte
	length   atomic.Int64
	disposed atomic.Bool
	nodes    sync.Pool
}

// enforce compilation error when interface contract changes
var _ Mailbox[any] = (*UnboundedMailbox[any])(nil)

// NewUnboundedMailbox creates an UnboundedMailbox.
// The mailbox starts with a dummy node so that producers can append by swapping tail
// and linking through the previous node.
func NewUnboundedMailbox[M any]() *UnboundedMailbox[M] {
	m := &UnboundedMailbox[M]{}
	m.nodes.New = func() any { return new(mailboxNode[M]) }
	dummy := new(mailboxNode[M])
	m.head.Store(dummy)
	m.tail.Store(dummy)
	return m
}

// Enqueue places the given value in the mailbox. Never blocks.
// Safe for concurrent calls by multiple producers.
func (m *UnboundedMailbox[M]) Enqueue(value M) error {
	if m.disposed.Load() {
		return gerrors.ErrMailboxDisposed
	}

	n := m.nodes.Get().(*mailboxNode[M])
	n.data = value
	n.next.Store(nil)

	prev := m.tail.Swap(n)
	prev.next.Store(n)
	m.length.Add(1)
	return nil
}

// Dequeue removes and returns the value at the head of the mailbox.
// Must be called by a single consumer goroutine.
func (m *UnboundedMailbox[M]) Dequeue() (M, bool) {
	var zero M
	head := m.head.Load()
	next := head.next.Load()
	if next == nil {
		return zero, false
	}

	m.head.Store(next)
	value := next.data
	next.data = zero
	m.length.Add(-1)

	head.next.Store(nil)
	m.nodes.Put(head)
	return value, true
}

// IsEmpty returns true when the mailbox is empty.
func (m *UnboundedMailbox[M]) IsEmpty() bool {
	return m.head.Load().next.Load() == nil
}

// Len returns the number of messages in the mailbox
func (m *UnboundedMailbox[M]) Len() int64 {
	return m.length.Load()
}

// Dispose makes further Enqueue calls fail. Messages already queued can still be dequeued.
func (m *UnboundedMailbox[M]) Dispose() {
	m.disposed.Store(true)
}
