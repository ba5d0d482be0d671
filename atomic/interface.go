/*
 * MIT License
 *
 * Copyright (c) 2021 OpenBand
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package atomic provides type-safe lock-free containers used for all
// shared state of this module (flags, callbacks, configurations, tables).
package atomic

import (
	"sync"
	"sync/atomic"
)

// Value is a type-safe wrapper around sync/atomic.Value with an optional
// default value returned while the container is still empty.
type Value[T any] interface {
	// SetDefault sets the value returned by Load while nothing was stored.
	SetDefault(def T)

	// Load returns the stored value, or the default while nothing was stored.
	Load() (val T)

	// Store sets the value.
	Store(val T)

	// Swap stores the new value and returns the previous one.
	Swap(new T) (old T)
}

// Map is a type-safe wrapper around sync.Map.
type Map[K comparable, V any] interface {
	Load(key K) (value V, ok bool)
	Store(key K, value V)
	LoadOrStore(key K, value V) (actual V, loaded bool)
	LoadAndDelete(key K) (value V, loaded bool)
	Delete(key K)
	Range(f func(key K, value V) bool)

	// Len walks the map and returns the number of stored keys.
	Len() int
}

// NewValue creates an empty Value container for type T.
func NewValue[T any]() Value[T] {
	return &val[T]{
		av: new(atomic.Value),
		dl: new(atomic.Value),
	}
}

// NewMap creates an empty Map container for key K and value V.
func NewMap[K comparable, V any]() Map[K, V] {
	return &mp[K, V]{
		m: sync.Map{},
	}
}
