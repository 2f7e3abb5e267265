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

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With an unknown level defaults to debug", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(7, buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debug("test debug")
		flushLogger(t, logger)

		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		require.Equal(t, "test debug", msg)

		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		require.Equal(t, DebugLevel.String(), lvl)
	})
	t.Run("With level filtering", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)

		logger.Info("dropped")
		logger.Debugf("dropped %d", 1)
		flushLogger(t, logger)
		require.Empty(t, buffer.String())

		logger.Warnf("kept %d", 2)
		flushLogger(t, logger)
		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "kept 2", msg)

		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "warn", lvl)
	})
	t.Run("With error level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		logger.Errorf("failed: %v", errors.New("boom"))
		flushLogger(t, logger)

		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "failed: boom", msg)
		assert.Equal(t, ErrorLevel, logger.LogLevel())
	})
	t.Run("With console encoding", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewConsoleZap(InfoLevel, buffer)
		logger.Info("hello console")
		flushLogger(t, logger)

		line := buffer.String()
		assert.Contains(t, line, "INFO")
		assert.Contains(t, line, "hello console")
		assert.False(t, strings.HasPrefix(line, "{"))
	})
	t.Run("With panic", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(PanicLevel, buffer)
		assert.Panics(t, func() { logger.Panic("panicking") })
		assert.Panics(t, func() { logger.Panicf("panicking %s", "again") })
	})
	t.Run("With LogOutput and Flush", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		require.Len(t, logger.LogOutput(), 1)
		require.NoError(t, logger.Flush())
		require.NotNil(t, logger.StdLogger())
	})
	t.Run("With default output", func(t *testing.T) {
		logger := NewZap(InfoLevel)
		require.Len(t, logger.LogOutput(), 1)
		require.NoError(t, logger.Flush())
	})
}

func TestLogWith(t *testing.T) {
	t.Run("With structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("actor", "ledger/ACCOUNT1", "processed", int64(3), "took", time.Second).Info("started")
		flushLogger(t, logger)

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "actor")
		require.Contains(t, m, "processed")
		require.Contains(t, m, "took")
	})
	t.Run("With no key values returns the same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Equal(t, logger, logger.With())
		assert.Equal(t, logger, logger.With(1, 2, 3, 4))
	})
	t.Run("With odd key values uses _ for the orphan", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("a", 1, "orphan").Info("msg")
		flushLogger(t, logger)

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "a")
		require.Contains(t, m, "_")
	})
	t.Run("With more pairs than the inline buffer", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		sub := logger.With("a", 1, "b", 2, "c", 3, "d", 4, "e", 5, "f", 6, "g", errors.New("x"))
		sub.Info("msg")
		flushLogger(t, sub.(*Zap))

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "a")
		require.Contains(t, m, "g")
	})
}

func TestDiscardLogger(t *testing.T) {
	DiscardLogger.Debug("discarded")
	DiscardLogger.Debugf("discarded %s", "msg")
	DiscardLogger.Info("discarded")
	DiscardLogger.Infof("discarded %s", "msg")
	DiscardLogger.Warn("discarded")
	DiscardLogger.Warnf("discarded %s", "msg")
	DiscardLogger.Error("discarded")
	DiscardLogger.Errorf("discarded %s", "msg")

	assert.Equal(t, InfoLevel, DiscardLogger.LogLevel())
	assert.False(t, DiscardLogger.Enabled(DebugLevel))
	assert.True(t, DiscardLogger.Enabled(FatalLevel))
	assert.Equal(t, DiscardLogger, DiscardLogger.With("actor", "test"))
	assert.NotEmpty(t, DiscardLogger.LogOutput())
	require.NoError(t, DiscardLogger.Flush())
	require.NotNil(t, DiscardLogger.StdLogger())
	assert.Panics(t, func() { DiscardLogger.Panicf("boom %d", 1) })
}

func TestLevel(t *testing.T) {
	testCases := []struct {
		text     string
		expected Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"", InfoLevel},
		{"warning", WarningLevel},
		{"warn", WarningLevel},
		{" error ", ErrorLevel},
		{"panic", PanicLevel},
		{"fatal", FatalLevel},
	}
	for _, tc := range testCases {
		level, err := ParseLevel(tc.text)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.expected, level, tc.text)
	}

	level, err := ParseLevel("verbose")
	require.Error(t, err)
	assert.Equal(t, InvalidLevel, level)
	assert.Equal(t, "invalid", level.String())
	assert.Equal(t, "warn", WarningLevel.String())
}

func TestLogEnabled(t *testing.T) {
	logger := NewZap(DebugLevel, new(bytes.Buffer))
	assert.True(t, logger.Enabled(DebugLevel))
	assert.True(t, logger.Enabled(ErrorLevel))

	errLogger := NewZap(ErrorLevel, new(bytes.Buffer))
	assert.False(t, errLogger.Enabled(DebugLevel))
	assert.False(t, errLogger.Enabled(WarningLevel))
	assert.True(t, errLogger.Enabled(ErrorLevel))
	assert.True(t, errLogger.Enabled(FatalLevel))
}

func flushLogger(t *testing.T, logger *Zap) {
	t.Helper()
	require.NoError(t, logger.logger.Sync())
}

func extractMessage(bytes []byte) (string, error) {
	return extractField(bytes, "msg")
}

func extractLevel(bytes []byte) (string, error) {
	return extractField(bytes, "level")
}

func extractField(bytes []byte, key string) (string, error) {
	c := make(map[string]json.RawMessage)
	if err := json.Unmarshal(bytes, &c); err != nil {
		return "", err
	}
	if v, ok := c[key]; ok {
		return strconv.Unquote(string(v))
	}
	return "", nil
}
