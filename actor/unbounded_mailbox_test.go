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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/minakt/errors"
)

func TestUnboundedMailbox(t *testing.T) {
	t.Run("With FIFO order", func(t *testing.T) {
		mailbox := NewUnboundedMailbox[int]()
		require.True(t, mailbox.IsEmpty())

		for i := range 10 {
			require.NoError(t, mailbox.Enqueue(i))
		}
		assert.EqualValues(t, 10, mailbox.Len())

		for i := range 10 {
			v, ok := mailbox.Dequeue()
			require.True(t, ok)
			assert.Equal(t, i, v)
		}

		_, ok := mailbox.Dequeue()
		assert.False(t, ok)
		assert.True(t, mailbox.IsEmpty())
		assert.Zero(t, mailbox.Len())
	})
	t.Run("With concurrent producers", func(t *testing.T) {
		mailbox := NewUnboundedMailbox[[2]int]()
		const producers = 8
		const perProducer = 1000

		var wg sync.WaitGroup
		for p := range producers {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				for i := range perProducer {
					require.NoError(t, mailbox.Enqueue([2]int{p, i}))
				}
			}(p)
		}
		wg.Wait()

		last := make([]int, producers)
		for i := range last {
			last[i] = -1
		}

		total := 0
		for {
			v, ok := mailbox.Dequeue()
			if !ok {
				break
			}
			// per-producer order is preserved
			require.Equal(t, last[v[0]]+1, v[1])
			last[v[0]] = v[1]
			total++
		}
		assert.Equal(t, producers*perProducer, total)
	})
	t.Run("With Dispose", func(t *testing.T) {
		mailbox := NewUnboundedMailbox[string]()
		require.NoError(t, mailbox.Enqueue("pending"))
		mailbox.Dispose()

		assert.ErrorIs(t, mailbox.Enqueue("late"), gerrors.ErrMailboxDisposed)

		v, ok := mailbox.Dequeue()
		require.True(t, ok)
		assert.Equal(t, "pending", v)
	})
}
