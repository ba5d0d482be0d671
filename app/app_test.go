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

// The supervisor tests drive the internal constructor directly: Init is
// reserved to the process main goroutine, which the test workers are not.
package app

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	liberr "github.com/OpenBand/barbacoa-server-lib/errors"
	"golang.org/x/sys/unix"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// runApp starts the supervisor on a dedicated goroutine and returns the
// channel carrying its exit code.
func runApp(a *app) chan int {
	code := make(chan int, 1)

	go func() {
		code <- a.Run()
	}()

	a.Wait()

	return code
}

var _ = Describe("Application Supervisor", func() {
	Context("initialization", func() {
		It("should refuse Init outside the main goroutine", func() {
			_, err := Init(Config{})
			Expect(err).To(HaveOccurred())
			Expect(liberr.Has(err, ErrorNotMainThread)).To(BeTrue())
		})

		It("should validate the configuration", func() {
			Expect(Config{}.Validate()).To(Succeed())
			Expect(Config{StdumpFilePath: "/tmp/dump.txt"}.Validate()).To(Succeed())
		})

		It("should refuse Init once other threads are alive", func() {
			// the test process runs many goroutines and worker threads
			err := checkNoOtherThreads()
			Expect(err).To(HaveOccurred())
			Expect(liberr.Has(err, ErrorThreadsAlive)).To(BeTrue())
		})
	})

	Context("signal classification", func() {
		It("should classify the fail class", func() {
			for _, s := range []syscall.Signal{
				unix.SIGSEGV, unix.SIGFPE, unix.SIGABRT, unix.SIGILL, unix.SIGBUS,
				unix.SIGSYS, unix.SIGPIPE, unix.SIGXCPU, unix.SIGXFSZ,
			} {
				Expect(isFailSignal(s)).To(BeTrue(), "signal %v", s)
			}
		})

		It("should not classify exit and control signals as fail", func() {
			for _, s := range []syscall.Signal{unix.SIGTERM, unix.SIGINT, unix.SIGHUP, unix.SIGQUIT, unix.SIGUSR1, unix.SIGUSR2} {
				Expect(isFailSignal(s)).To(BeFalse(), "signal %v", s)
			}
		})

		It("should map user signals", func() {
			c, ok := isControlSignal(unix.SIGUSR1)
			Expect(ok).To(BeTrue())
			Expect(c).To(Equal(USR1))

			c, ok = isControlSignal(unix.SIGUSR2)
			Expect(ok).To(BeTrue())
			Expect(c).To(Equal(USR2))

			_, ok = isControlSignal(unix.SIGTERM)
			Expect(ok).To(BeFalse())
		})
	})

	Context("lifecycle", func() {
		It("should run the start callback on the main loop and stop explicitly", func() {
			a := newApp(Config{})

			var started atomic.Bool
			Expect(a.OnStart(func() { started.Store(true) })).To(Succeed())

			var (
				exited  atomic.Int32
				exitSig atomic.Int64
			)

			Expect(a.OnExit(func(signo syscall.Signal) {
				exitSig.Store(int64(signo))
				exited.Add(1)
			})).To(Succeed())

			code := runApp(a)

			Expect(started.Load()).To(BeTrue())
			Expect(a.IsRunning()).To(BeTrue())

			Expect(a.Stop(7)).To(Succeed())
			Eventually(code, 2*time.Second).Should(Receive(Equal(7)))
			Expect(exited.Load()).To(Equal(int32(1)))
			Expect(exitSig.Load()).To(Equal(int64(0)))
		})

		It("should refuse callback registration while running", func() {
			a := newApp(Config{})
			code := runApp(a)

			Expect(a.OnExit(nil)).ToNot(Succeed())

			Expect(a.Stop(0)).To(Succeed())
			Eventually(code, 2*time.Second).Should(Receive())
		})
	})

	Context("signal driven exit", func() {
		It("should run the exit callback exactly once and leave with 128 plus signo", func() {
			a := newApp(Config{})

			var exited atomic.Int32
			var gotSig atomic.Int64

			Expect(a.OnExit(func(signo syscall.Signal) {
				exited.Add(1)
				gotSig.Store(int64(signo))
			})).To(Succeed())

			code := runApp(a)

			Expect(unix.Kill(os.Getpid(), unix.SIGTERM)).To(Succeed())

			Eventually(code, 2*time.Second).Should(Receive(Equal(128 + int(unix.SIGTERM))))
			Expect(exited.Load()).To(Equal(int32(1)))
			Expect(syscall.Signal(gotSig.Load())).To(Equal(unix.SIGTERM))

			ev := a.LastSignal()
			Expect(ev.Kind).To(Equal(EventExit))
			Expect(ev.Signo).To(Equal(syscall.Signal(unix.SIGTERM)))
		})
	})

	Context("control signals", func() {
		It("should forward USR1 to the control callback on the main loop", func() {
			a := newApp(Config{})

			got := make(chan ControlSignal, 1)
			Expect(a.OnControl(func(sig ControlSignal) { got <- sig })).To(Succeed())

			code := runApp(a)

			Expect(unix.Kill(os.Getpid(), unix.SIGUSR1)).To(Succeed())
			Eventually(got, 2*time.Second).Should(Receive(Equal(USR1)))

			Expect(a.Stop(0)).To(Succeed())
			Eventually(code, 2*time.Second).Should(Receive(Equal(0)))

			Expect(a.LastSignal().Kind).To(Equal(EventControl))
		})
	})

	Context("fail signals", func() {
		It("should capture a dump, fire the fail callback, then terminate", func() {
			dir := GinkgoT().TempDir()
			dump := filepath.Join(dir, "stdump.txt")

			a := newApp(Config{StdumpFilePath: dump})

			var (
				failPath atomic.Value
				termCode = make(chan int, 1)
			)

			prev := terminateProcess
			terminateProcess = func(code int) { termCode <- code }
			defer func() { terminateProcess = prev }()

			Expect(a.OnFail(func(signo syscall.Signal, dumpPath string) {
				failPath.Store(dumpPath)
			})).To(Succeed())

			code := runApp(a)

			Expect(unix.Kill(os.Getpid(), unix.SIGXCPU)).To(Succeed())

			Eventually(termCode, 2*time.Second).Should(Receive(Equal(128 + int(unix.SIGXCPU))))
			Expect(failPath.Load()).To(Equal(dump))

			content, err := os.ReadFile(dump)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(content)).To(ContainSubstring("goroutine"))

			ev := a.LastSignal()
			Expect(ev.Kind).To(Equal(EventFail))
			Expect(ev.DumpPath).To(Equal(dump))

			Expect(a.Stop(0)).To(Succeed())
			Eventually(code, 2*time.Second).Should(Receive())
		})
	})

	Context("wait helper", func() {
		It("should unblock once the main loop runs", func() {
			a := newApp(Config{})

			unblocked := make(chan struct{})
			go func() {
				a.Wait()
				close(unblocked)
			}()

			Consistently(unblocked, 50*time.Millisecond).ShouldNot(BeClosed())

			code := runApp(a)
			Eventually(unblocked, 2*time.Second).Should(BeClosed())

			Expect(a.Stop(0)).To(Succeed())
			Eventually(code, 2*time.Second).Should(Receive())
		})
	})
})
