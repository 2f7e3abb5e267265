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

package registry

import (
	"reflect"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"

	"github.com/tochemey/minakt/internal/xsync"
)

const defaultShards = 32

// Registry is a process-wide name index of live entries.
// Names are unique: an insertion never replaces an existing entry and a
// removal only succeeds for the entry that currently holds the name.
type Registry[V comparable] struct {
	shards []*xsync.Map[string, V]
	group  singleflight.Group
}

// New creates a Registry with the given number of shards.
// A non-positive count falls back to a default.
func New[V comparable](shards int) *Registry[V] {
	if shards <= 0 {
		shards = defaultShards
	}
	x := &Registry[V]{shards: make([]*xsync.Map[string, V], shards)}
	for i := range x.shards {
		x.shards[i] = xsync.NewMap[string, V]()
	}
	return x
}

func (x *Registry[V]) shard(name string) *xsync.Map[string, V] {
	return x.shards[xxh3.HashString(name)%uint64(len(x.shards))]
}

// Get returns the entry registered under name
func (x *Registry[V]) Get(name string) (V, bool) {
	return x.shard(name).Get(name)
}

// Register stores value under name unless the name is already taken.
// It returns the entry holding the name after the call and whether value was stored.
func (x *Registry[V]) Register(name string, value V) (V, bool) {
	return x.shard(name).SetIfAbsent(name, value)
}

// Unregister removes name only when it still refers to value.
func (x *Registry[V]) Unregister(name string, value V) bool {
	return x.shard(name).DeleteIf(name, func(current V) bool {
		return current == value
	})
}

// Do runs fn once for all concurrent callers asking for the same name.
// Callers that arrive while fn is running share its result.
func (x *Registry[V]) Do(name string, fn func() (V, error)) (V, error) {
	out, err, _ := x.group.Do(name, func() (any, error) {
		return fn()
	})
	if out == nil {
		var zero V
		return zero, err
	}
	return out.(V), err
}

// Len returns the number of registered names
func (x *Registry[V]) Len() int {
	total := 0
	for _, s := range x.shards {
		total += s.Len()
	}
	return total
}

// Names returns the registered names in no particular order
func (x *Registry[V]) Names() []string {
	names := make([]string, 0, x.Len())
	for _, s := range x.shards {
		names = append(names, s.Keys()...)
	}
	return names
}

// Reset drops every entry
func (x *Registry[V]) Reset() {
	for _, s := range x.shards {
		s.Reset()
	}
}

// Kind returns the lower cased type name of a given object,
// dereferencing pointers. It is used as the first segment of registry keys.
func Kind(v any) string {
	rtype := reflect.TypeOf(v)
	for rtype != nil && rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}
	if rtype == nil {
		return ""
	}
	return lowTrim(rtype.String())
}

// Key builds the "<kind>/<identifier>" registry key
func Key(kind, id string) string {
	return kind + "/" + id
}

// lowTrim trim any space and lower the string value
func lowTrim(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
