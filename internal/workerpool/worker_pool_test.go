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

package workerpool

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type taskFunc func()

func (f taskFunc) Run() {
	f()
}

func TestWorkerPool(t *testing.T) {
	t.Run("With happy path", func(t *testing.T) {
		pool := New(WithWorkers(4), WithQueueHint(16))
		require.Equal(t, 4, pool.Workers())
		pool.Start()
		pool.Start()

		const workCount = 1000
		var wg sync.WaitGroup
		wg.Add(workCount)
		executed := atomic.NewInt64(0)
		for range workCount {
			require.NoError(t, pool.Submit(taskFunc(func() {
				executed.Inc()
				wg.Done()
			})))
		}

		wg.Wait()
		assert.EqualValues(t, workCount, executed.Load())
		pool.Stop()

		// already stopped
		pool.Stop()
		assert.ErrorIs(t, pool.Submit(taskFunc(func() {})), ErrPoolNotRunning)
	})
	t.Run("With bounded parallelism", func(t *testing.T) {
		pool := New(WithWorkers(2))
		pool.Start()

		running := atomic.NewInt32(0)
		maxSeen := atomic.NewInt32(0)
		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			require.NoError(t, pool.Submit(taskFunc(func() {
				defer wg.Done()
				current := running.Inc()
				for {
					seen := maxSeen.Load()
					if current <= seen || maxSeen.CompareAndSwap(seen, current) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				running.Dec()
			})))
		}
		wg.Wait()
		pool.Stop()
		assert.LessOrEqual(t, maxSeen.Load(), int32(2))
		assert.Zero(t, pool.Busy())
	})
	t.Run("With busy workers and pending tasks", func(t *testing.T) {
		pool := New(WithWorkers(1))
		pool.Start()

		release := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(3)
		for range 3 {
			require.NoError(t, pool.Submit(taskFunc(func() {
				defer wg.Done()
				<-release
			})))
		}

		require.Eventually(t, func() bool { return pool.Busy() == 1 }, time.Second, 5*time.Millisecond)
		assert.EqualValues(t, 2, pool.Pending())

		close(release)
		wg.Wait()
		pool.Stop()
		assert.Zero(t, pool.Busy())
	})
	t.Run("When not started", func(t *testing.T) {
		pool := New(WithWorkers(0))
		require.NotZero(t, pool.Workers())
		assert.ErrorIs(t, pool.Submit(taskFunc(func() {})), ErrPoolNotRunning)
		assert.Zero(t, pool.Pending())
		pool.Stop()
		require.False(t, pool.stopped.Load())
	})
}
