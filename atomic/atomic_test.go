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

package atomic_test

import (
	"sync"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Value", func() {
	It("should return the zero value while empty", func() {
		v := libatm.NewValue[int]()
		Expect(v.Load()).To(Equal(0))
	})

	It("should return the default while empty", func() {
		v := libatm.NewValue[string]()
		v.SetDefault("fallback")
		Expect(v.Load()).To(Equal("fallback"))
		v.Store("real")
		Expect(v.Load()).To(Equal("real"))
	})

	It("should store nil-able types", func() {
		v := libatm.NewValue[func()]()
		Expect(v.Load()).To(BeNil())
		var ran bool
		v.Store(func() { ran = true })
		v.Load()()
		Expect(ran).To(BeTrue())
		v.Store(nil)
		Expect(v.Load()).To(BeNil())
	})

	It("should swap and return the previous value", func() {
		v := libatm.NewValue[int]()
		v.Store(1)
		Expect(v.Swap(2)).To(Equal(1))
		Expect(v.Load()).To(Equal(2))
	})

	It("should be safe for concurrent use", func() {
		v := libatm.NewValue[int]()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				v.Store(n)
				_ = v.Load()
			}(i)
		}
		wg.Wait()
		Expect(v.Load()).To(BeNumerically(">=", 0))
	})
})

var _ = Describe("Map", func() {
	It("should store and load typed values", func() {
		m := libatm.NewMap[uint64, string]()
		m.Store(1, "one")
		val, ok := m.Load(1)
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal("one"))
	})

	It("should miss on absent keys", func() {
		m := libatm.NewMap[uint64, string]()
		_, ok := m.Load(42)
		Expect(ok).To(BeFalse())
	})

	It("should count keys with Len", func() {
		m := libatm.NewMap[int, int]()
		for i := 0; i < 10; i++ {
			m.Store(i, i)
		}
		Expect(m.Len()).To(Equal(10))
		m.Delete(3)
		Expect(m.Len()).To(Equal(9))
	})

	It("should load and delete atomically", func() {
		m := libatm.NewMap[int, string]()
		m.Store(7, "seven")
		val, loaded := m.LoadAndDelete(7)
		Expect(loaded).To(BeTrue())
		Expect(val).To(Equal("seven"))
		_, loaded = m.LoadAndDelete(7)
		Expect(loaded).To(BeFalse())
	})

	It("should range over all entries", func() {
		m := libatm.NewMap[int, int]()
		m.Store(1, 10)
		m.Store(2, 20)
		sum := 0
		m.Range(func(k, v int) bool {
			sum += v
			return true
		})
		Expect(sum).To(Equal(30))
	})
})
