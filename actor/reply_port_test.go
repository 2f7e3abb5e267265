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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/minakt/errors"
)

func TestReplyPort(t *testing.T) {
	t.Run("With a single send", func(t *testing.T) {
		port := NewReplyPort[string]()
		require.NoError(t, port.Send("pong"))
		assert.Equal(t, "pong", <-port.receive())
		assert.False(t, port.Abandoned())
	})
	t.Run("With a second send", func(t *testing.T) {
		port := NewReplyPort[int]()
		require.NoError(t, port.Send(1))
		require.ErrorIs(t, port.Send(2), gerrors.ErrReplyAlreadySent)
		assert.Equal(t, 1, <-port.receive())
		assert.Empty(t, port.receive())
	})
	t.Run("With an abandoned port", func(t *testing.T) {
		port := NewReplyPort[int]()
		port.abandon()
		assert.True(t, port.Abandoned())
		require.NoError(t, port.Send(1))
		assert.Empty(t, port.receive())
		require.ErrorIs(t, port.Send(2), gerrors.ErrReplyAlreadySent)
	})
}
