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

package duration_test

import (
	"encoding/json"
	"reflect"
	"time"

	libdur "github.com/OpenBand/barbacoa-server-lib/duration"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Duration", func() {
	Context("parsing", func() {
		It("should parse plain durations", func() {
			d, err := libdur.Parse("5h30m")
			Expect(err).ToNot(HaveOccurred())
			Expect(d).To(Equal(libdur.Hours(5) + libdur.Minutes(30)))
		})

		It("should parse durations with days", func() {
			d, err := libdur.Parse("2d12h")
			Expect(err).ToNot(HaveOccurred())
			Expect(d.Days()).To(Equal(int64(2)))
			Expect(d.Time()).To(Equal(60 * time.Hour))
		})

		It("should parse bare days", func() {
			d, err := libdur.Parse("3d")
			Expect(err).ToNot(HaveOccurred())
			Expect(d).To(Equal(libdur.Days(3)))
		})

		It("should reject invalid input", func() {
			_, err := libdur.Parse("not a duration")
			Expect(err).To(HaveOccurred())
		})

		It("should reject empty input", func() {
			_, err := libdur.Parse("")
			Expect(err).To(HaveOccurred())
		})
	})

	Context("formatting", func() {
		It("should render days notation", func() {
			Expect((libdur.Days(2) + libdur.Hours(12)).String()).To(Equal("2d12h0m0s"))
		})

		It("should render sub-day durations like time.Duration", func() {
			Expect(libdur.Minutes(90).String()).To(Equal("1h30m0s"))
		})

		It("should round trip through String and Parse", func() {
			src := libdur.Days(1) + libdur.Hours(2) + libdur.Seconds(3)
			d, err := libdur.Parse(src.String())
			Expect(err).ToNot(HaveOccurred())
			Expect(d).To(Equal(src))
		})
	})

	Context("JSON encoding", func() {
		type wrapped struct {
			Timeout libdur.Duration `json:"timeout"`
		}

		It("should marshal as a string", func() {
			b, err := json.Marshal(wrapped{Timeout: libdur.Seconds(30)})
			Expect(err).ToNot(HaveOccurred())
			Expect(string(b)).To(Equal(`{"timeout":"30s"}`))
		})

		It("should unmarshal from a string", func() {
			var w wrapped
			Expect(json.Unmarshal([]byte(`{"timeout":"1h"}`), &w)).To(Succeed())
			Expect(w.Timeout).To(Equal(libdur.Hours(1)))
		})
	})

	Describe("ViperDecoderHook", func() {
		var hook func(reflect.Type, reflect.Type, interface{}) (interface{}, error)

		BeforeEach(func() {
			hook = libdur.ViperDecoderHook()
		})

		It("should decode string to Duration", func() {
			result, err := hook(reflect.TypeOf(""), reflect.TypeOf(libdur.Duration(0)), "5h30m")
			Expect(err).ToNot(HaveOccurred())

			d, ok := result.(libdur.Duration)
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal(libdur.Hours(5) + libdur.Minutes(30)))
		})

		It("should decode duration with days", func() {
			result, err := hook(reflect.TypeOf(""), reflect.TypeOf(libdur.Duration(0)), "2d12h")
			Expect(err).ToNot(HaveOccurred())

			d, ok := result.(libdur.Duration)
			Expect(ok).To(BeTrue())
			Expect(d.Days()).To(Equal(int64(2)))
		})

		It("should pass through when target is not Duration", func() {
			result, err := hook(reflect.TypeOf(""), reflect.TypeOf(time.Duration(0)), "5h30m")
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal("5h30m"))
		})

		It("should return error for invalid duration string", func() {
			_, err := hook(reflect.TypeOf(""), reflect.TypeOf(libdur.Duration(0)), "garbage")
			Expect(err).To(HaveOccurred())
		})
	})
})
