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

package atomic

import (
	"sync"
)

type mp[K comparable, V any] struct {
	m sync.Map
}

func (o *mp[K, V]) cast(in any, chk bool) (value V, ok bool) {
	if v, k := in.(V); k {
		return v, chk
	}

	return value, false
}

func (o *mp[K, V]) Load(key K) (value V, ok bool) {
	return o.cast(o.m.Load(key))
}

func (o *mp[K, V]) Store(key K, value V) {
	o.m.Store(key, value)
}

func (o *mp[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	return o.cast(o.m.LoadOrStore(key, value))
}

func (o *mp[K, V]) LoadAndDelete(key K) (value V, loaded bool) {
	return o.cast(o.m.LoadAndDelete(key))
}

func (o *mp[K, V]) Delete(key K) {
	o.m.Delete(key)
}

func (o *mp[K, V]) Range(f func(key K, value V) bool) {
	o.m.Range(func(key, value any) bool {
		var (
			k K
			v V
			b bool
		)

		if k, b = key.(K); !b {
			return true
		}

		if v, b = value.(V); !b {
			return true
		}

		return f(k, v)
	})
}

func (o *mp[K, V]) Len() int {
	var n int

	o.m.Range(func(key, value any) bool {
		n++
		return true
	})

	return n
}
