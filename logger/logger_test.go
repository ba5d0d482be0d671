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

package logger_test

import (
	"errors"

	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	loglvl "github.com/OpenBand/barbacoa-server-lib/logger/level"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logger", func() {
	Context("levels", func() {
		It("should default to InfoLevel", func() {
			log := liblog.New()
			Expect(log.GetLevel()).To(Equal(loglvl.InfoLevel))
		})

		It("should change level", func() {
			log := liblog.New()
			log.SetLevel(loglvl.DebugLevel)
			Expect(log.GetLevel()).To(Equal(loglvl.DebugLevel))
		})

		It("should accept NilLevel to disable logging", func() {
			log := liblog.New()
			log.SetLevel(loglvl.NilLevel)
			log.Info("must not panic", nil)
			Expect(log.GetLevel()).To(Equal(loglvl.NilLevel))
		})
	})

	Context("fields", func() {
		It("should store and return a copy of fields", func() {
			log := liblog.New()
			log.SetFields(liblog.Fields{"component": "test"})

			f := log.GetFields()
			f["component"] = "mutated"

			Expect(log.GetFields()).To(HaveKeyWithValue("component", "test"))
		})
	})

	Context("clone", func() {
		It("should not share level changes", func() {
			log := liblog.New()
			cpy := log.Clone()

			cpy.SetLevel(loglvl.DebugLevel)
			Expect(log.GetLevel()).To(Equal(loglvl.InfoLevel))
			Expect(cpy.GetLevel()).To(Equal(loglvl.DebugLevel))
		})
	})

	Context("error helper", func() {
		It("should report whether an error was logged", func() {
			log := liblog.New()
			Expect(log.CheckError("no errors", nil, nil)).To(BeFalse())
			Expect(log.CheckError("got error", nil, errors.New("boom"))).To(BeTrue())
		})
	})

	Context("default logger", func() {
		It("should be a shared singleton", func() {
			Expect(liblog.GetDefault()).To(BeIdenticalTo(liblog.GetDefault()))
		})
	})

	Context("level parsing", func() {
		It("should round trip level strings", func() {
			for _, lvl := range loglvl.ListLevels() {
				Expect(loglvl.Parse(lvl.String())).To(Equal(lvl))
			}
		})

		It("should map unknown strings to InfoLevel", func() {
			Expect(loglvl.Parse("whatever")).To(Equal(loglvl.InfoLevel))
		})
	})
})
