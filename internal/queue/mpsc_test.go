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

package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMpscQueue(t *testing.T) {
	t.Run("With FIFO order", func(t *testing.T) {
		q := NewMpscQueue[int]()
		require.True(t, q.IsEmpty())
		for i := range 5 {
			q.Push(i)
		}
		assert.EqualValues(t, 5, q.Len())
		for i := range 5 {
			v, ok := q.Pop()
			require.True(t, ok)
			assert.Equal(t, i, v)
		}
		_, ok := q.Pop()
		assert.False(t, ok)
		assert.True(t, q.IsEmpty())
		assert.Zero(t, q.Len())
	})
	t.Run("With concurrent producers", func(t *testing.T) {
		q := NewMpscQueue[int]()
		const producers = 8
		const perProducer = 500
		var wg sync.WaitGroup
		for p := range producers {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				for i := range perProducer {
					q.Push(p*perProducer + i)
				}
			}(p)
		}
		wg.Wait()

		// every producer's values come out in its own order
		last := make(map[int]int)
		count := 0
		for {
			v, ok := q.Pop()
			if !ok {
				break
			}
			p := v / perProducer
			if prev, seen := last[p]; seen {
				require.Greater(t, v, prev)
			}
			last[p] = v
			count++
		}
		assert.Equal(t, producers*perProducer, count)
	})
}
