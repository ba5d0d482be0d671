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
	"sync/atomic"
)

// wrap boxes the stored value so that nil interfaces and zero values
// remain storable into sync/atomic.Value.
type wrap[T any] struct {
	v T
}

type val[T any] struct {
	av *atomic.Value // stored value, boxed
	dl *atomic.Value // default value for load, boxed
}

func (o *val[T]) SetDefault(def T) {
	o.dl.Store(wrap[T]{v: def})
}

func (o *val[T]) getDefault() T {
	if w, k := o.dl.Load().(wrap[T]); k {
		return w.v
	}

	var zero T
	return zero
}

func (o *val[T]) Load() (val T) {
	if w, k := o.av.Load().(wrap[T]); k {
		return w.v
	}

	return o.getDefault()
}

func (o *val[T]) Store(val T) {
	o.av.Store(wrap[T]{v: val})
}

func (o *val[T]) Swap(new T) (old T) {
	if w, k := o.av.Swap(wrap[T]{v: new}).(wrap[T]); k {
		return w.v
	}

	return o.getDefault()
}
