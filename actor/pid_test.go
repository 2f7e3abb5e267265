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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/minakt/errors"
)

func TestTellAndCall(t *testing.T) {
	t.Run("With messages handled in order", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)

		pid, err := Spawn(ctx, system, "", newCounter(), 0)
		require.NoError(t, err)
		require.NotEmpty(t, pid.ID())
		require.Empty(t, pid.Name())
		require.Equal(t, pid.ID(), pid.String())

		for i := 1; i <= 100; i++ {
			require.NoError(t, Tell[counterMessage](ctx, pid, increment{by: i}))
		}

		assert.Equal(t, 5050, count(t, pid))
		assert.EqualValues(t, 101, pid.ProcessedCount())
		assert.Zero(t, pid.MailboxSize())
		stopSystem(t, system)
	})
	t.Run("With concurrent senders never overlapping", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t, WithThroughput(3))
		actor := newCounter()
		pid, err := Spawn(ctx, system, "", actor, 0)
		require.NoError(t, err)

		const senders = 10
		const perSender = 200
		var wg sync.WaitGroup
		for range senders {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range perSender {
					require.NoError(t, Tell[counterMessage](ctx, pid, increment{by: 1}))
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, senders*perSender, count(t, pid))
		assert.False(t, actor.overlapped.Load())
		stopSystem(t, system)
	})
	t.Run("With a domain error keeping the actor alive", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		pid, err := Spawn(ctx, system, "", newCounter(), 4)
		require.NoError(t, err)

		require.NoError(t, Tell[counterMessage](ctx, pid, increment{by: -1}))
		assert.Equal(t, 4, count(t, pid))
		assert.True(t, pid.IsRunning())
		assert.EqualValues(t, 1, pid.FailuresCount())
		assert.EqualValues(t, 1, system.Metric(ctx).FailuresCount())
		stopSystem(t, system)
	})
	t.Run("With a timeout when no reply comes", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		pid, err := Spawn(ctx, system, "", newCounter(), 0)
		require.NoError(t, err)

		start := time.Now()
		_, err = Call(ctx, pid, func(port *ReplyPort[int]) counterMessage {
			return ignore{port: port}
		}, 100*time.Millisecond)
		require.ErrorIs(t, err, gerrors.ErrRequestTimeout)
		assert.Less(t, time.Since(start), time.Second)

		// the actor keeps working
		assert.Equal(t, 0, count(t, pid))
		stopSystem(t, system)
	})
	t.Run("With an invalid timeout", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		pid, err := Spawn(ctx, system, "", newCounter(), 0)
		require.NoError(t, err)

		_, err = Call(ctx, pid, func(port *ReplyPort[int]) counterMessage {
			return getCount{port: port}
		}, 0)
		require.ErrorIs(t, err, gerrors.ErrInvalidTimeout)

		_, err = Call[counterMessage, int](ctx, pid, nil, time.Second)
		require.ErrorIs(t, err, gerrors.ErrInvalidMessage)
		stopSystem(t, system)
	})
	t.Run("With a canceled context", func(t *testing.T) {
		system := newTestSystem(t)
		pid, err := Spawn(context.Background(), system, "", newCounter(), 0)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err = Call(ctx, pid, func(port *ReplyPort[int]) counterMessage {
			return ignore{port: port}
		}, time.Minute)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		require.ErrorIs(t, Tell[counterMessage](ctx, pid, increment{by: 1}), context.DeadlineExceeded)
		stopSystem(t, system)
	})
	t.Run("With the target dying before replying", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		pid, err := Spawn(ctx, system, "", newCounter(), 0)
		require.NoError(t, err)

		_, err = Call(ctx, pid, func(*ReplyPort[int]) counterMessage {
			return explode{}
		}, time.Minute)
		require.ErrorIs(t, err, gerrors.ErrDead)
		stopSystem(t, system)
	})
	t.Run("With a second reply rejected", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		actor := newCounter()
		pid, err := Spawn(ctx, system, "", actor, 7)
		require.NoError(t, err)

		value, err := Call(ctx, pid, func(port *ReplyPort[int]) counterMessage {
			return replyTwice{port: port}
		}, time.Second)
		require.NoError(t, err)
		assert.Equal(t, 7, value)
		assert.ErrorIs(t, <-actor.secondReply, gerrors.ErrReplyAlreadySent)
		stopSystem(t, system)
	})
	t.Run("With a nil target", func(t *testing.T) {
		require.ErrorIs(t, Tell[counterMessage](context.Background(), nil, increment{}), gerrors.ErrDead)
	})
	t.Run("With a nil message", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		pid, err := Spawn(ctx, system, "", newCounter(), 0)
		require.NoError(t, err)
		require.ErrorIs(t, Tell(ctx, pid, counterMessage(nil)), gerrors.ErrInvalidMessage)
		stopSystem(t, system)
	})
	t.Run("With a stopped system", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		pid, err := Spawn(ctx, system, "", newCounter(), 0)
		require.NoError(t, err)
		stopSystem(t, system)

		require.ErrorIs(t, Tell[counterMessage](ctx, pid, increment{by: 1}), gerrors.ErrActorSystemNotStarted)
	})
	t.Run("With a single worker and throughput of one", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t, WithWorkers(1), WithThroughput(1))
		first, err := Spawn(ctx, system, "", newCounter(), 0)
		require.NoError(t, err)
		second, err := Spawn(ctx, system, "", newCounter(), 0)
		require.NoError(t, err)

		for range 50 {
			require.NoError(t, Tell[counterMessage](ctx, first, increment{by: 1}))
			require.NoError(t, Tell[counterMessage](ctx, second, increment{by: 2}))
		}

		assert.Equal(t, 50, count(t, first))
		assert.Equal(t, 100, count(t, second))
		stopSystem(t, system)
	})
}

func TestPanic(t *testing.T) {
	ctx := context.Background()
	system := newTestSystem(t)
	subscriber, err := system.Subscribe()
	require.NoError(t, err)

	faulty := newCounter()
	victim, err := Spawn(ctx, system, "faulty", faulty, 0)
	require.NoError(t, err)
	bystander, err := Spawn(ctx, system, "bystander", newCounter(), 0)
	require.NoError(t, err)

	require.NoError(t, Tell[counterMessage](ctx, victim, explode{}))

	select {
	case <-victim.Terminated():
	case <-time.After(5 * time.Second):
		require.Fail(t, "actor should have terminated")
	}

	assert.False(t, victim.IsRunning())
	assert.EqualValues(t, 1, faulty.postStops.Load())
	assert.ErrorIs(t, Tell[counterMessage](ctx, victim, increment{by: 1}), gerrors.ErrDead)

	_, found := WhereIs[counterMessage](system, "faulty")
	assert.False(t, found)

	// other actors are not affected
	require.NoError(t, Tell[counterMessage](ctx, bystander, increment{by: 3}))
	assert.Equal(t, 3, count(t, bystander))
	assert.EqualValues(t, 1, system.Metric(ctx).PanicsCount())

	var panicked *ActorPanicked
	for msg := range subscriber.Iterator() {
		if event, ok := msg.Payload().(*ActorPanicked); ok {
			panicked = event
		}
	}
	require.NotNil(t, panicked)
	assert.Equal(t, "faulty", panicked.Name)
	var panicErr *gerrors.PanicError
	assert.ErrorAs(t, panicked.Reason, &panicErr)

	require.NoError(t, system.Unsubscribe(subscriber))
	stopSystem(t, system)
}

func TestStopAndDrain(t *testing.T) {
	t.Run("With Drain handling every pending message", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		actor := newCounter()
		pid, err := Spawn(ctx, system, "", actor, 0)
		require.NoError(t, err)

		require.NoError(t, Tell[counterMessage](ctx, pid, sleep{d: 50 * time.Millisecond}))
		for range 10 {
			require.NoError(t, Tell[counterMessage](ctx, pid, increment{by: 1}))
		}

		require.NoError(t, pid.Drain(ctx))
		assert.False(t, pid.IsRunning())
		assert.EqualValues(t, 11, pid.ProcessedCount())
		assert.EqualValues(t, 1, actor.postStops.Load())
		assert.Zero(t, system.Metric(ctx).DeadlettersCount())
		assert.ErrorIs(t, Tell[counterMessage](ctx, pid, increment{by: 1}), gerrors.ErrDead)

		// draining twice is harmless
		require.NoError(t, pid.Drain(ctx))
		assert.EqualValues(t, 1, actor.postStops.Load())
		stopSystem(t, system)
	})
	t.Run("With Stop dropping pending messages", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		actor := newCounter()
		pid, err := Spawn(ctx, system, "", actor, 0)
		require.NoError(t, err)

		require.NoError(t, Tell[counterMessage](ctx, pid, sleep{d: 100 * time.Millisecond}))
		for range 5 {
			require.NoError(t, Tell[counterMessage](ctx, pid, increment{by: 1}))
		}

		require.NoError(t, pid.Stop(ctx))
		assert.False(t, pid.IsRunning())
		assert.EqualValues(t, 1, actor.postStops.Load())
		assert.GreaterOrEqual(t, system.Metric(ctx).DeadlettersCount(), int64(5))
		stopSystem(t, system)
	})
	t.Run("With an actor stopping itself", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		pid, err := Spawn(ctx, system, "self-stopper", newCounter(), 0)
		require.NoError(t, err)

		require.NoError(t, Tell[counterMessage](ctx, pid, stopSelf{}))
		select {
		case <-pid.Terminated():
		case <-time.After(5 * time.Second):
			require.Fail(t, "actor should have stopped itself")
		}

		_, found := WhereIs[counterMessage](system, "self-stopper")
		assert.False(t, found)
		assert.Zero(t, system.NumActors())
		stopSystem(t, system)
	})
	t.Run("With Stop bounded by the context", func(t *testing.T) {
		ctx := context.Background()
		system := newTestSystem(t)
		pid, err := Spawn(ctx, system, "", newCounter(), 0)
		require.NoError(t, err)

		require.NoError(t, Tell[counterMessage](ctx, pid, sleep{d: 300 * time.Millisecond}))
		require.Eventually(t, func() bool { return pid.MailboxSize() == 0 }, time.Second, 5*time.Millisecond)

		short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		require.ErrorIs(t, pid.Stop(short), context.DeadlineExceeded)

		require.NoError(t, pid.Stop(ctx))
		stopSystem(t, system)
	})
}
