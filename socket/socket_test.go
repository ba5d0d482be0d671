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

package socket_test

import (
	"net"
	"sync/atomic"
	"time"

	liberr "github.com/OpenBand/barbacoa-server-lib/errors"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Scope Latch", func() {
	It("should hand out continue locks while alive", func() {
		var l libsck.ScopeRunner

		release, ok := l.ContinueLock()
		Expect(ok).To(BeTrue())
		release()

		Expect(l.IsStopped()).To(BeFalse())
	})

	It("should refuse continue locks once stopped", func() {
		var l libsck.ScopeRunner

		l.Stop()

		_, ok := l.ContinueLock()
		Expect(ok).To(BeFalse())
		Expect(l.IsStopped()).To(BeTrue())
	})

	It("should be idempotent on stop", func() {
		var l libsck.ScopeRunner
		l.Stop()
		l.Stop()
		Expect(l.IsStopped()).To(BeTrue())
	})
})

var _ = Describe("Transport Connection", func() {
	var (
		l        liblop.Loop
		here     net.Conn
		there    net.Conn
		conn     libsck.Connection
	)

	BeforeEach(func() {
		var err error
		l, err = liblop.New(2)
		Expect(err).ToNot(HaveOccurred())
		Expect(l.Start(nil, nil)).To(Succeed())

		here, there = net.Pipe()
		conn = libsck.NewConnection(here, 1, 64, l, nil)
	})

	AfterEach(func() {
		conn.Disconnect()
		_ = there.Close()
		Expect(l.Stop()).To(Succeed())
	})

	It("should expose identity and state", func() {
		Expect(conn.ID()).To(Equal(uint64(1)))
		Expect(conn.IsConnected()).To(BeTrue())
		Expect(conn.ChunkSize()).To(Equal(64))
	})

	It("should complete one read with the peer bytes", func() {
		got := make(chan []byte, 1)

		Expect(conn.AsyncRead(16, func(success bool, data []byte) {
			if success {
				got <- data
			}
		})).To(Succeed())

		go func() {
			_, _ = there.Write([]byte("hello"))
		}()

		var data []byte
		Eventually(got, time.Second).Should(Receive(&data))
		Expect(data).To(Equal([]byte("hello")))
	})

	It("should refuse a second outstanding read", func() {
		Expect(conn.AsyncRead(8, nil)).To(Succeed())

		err := conn.AsyncRead(8, nil)
		Expect(err).To(HaveOccurred())
		Expect(liberr.Has(err, libsck.ErrorReadPending)).To(BeTrue())
	})

	It("should write the whole buffer to the peer", func() {
		done := make(chan int, 1)

		go func() {
			buf := make([]byte, 16)
			n, _ := there.Read(buf)
			done <- n
		}()

		ok := make(chan bool, 1)
		Expect(conn.AsyncWrite([]byte("payload"), func(success bool, written int) {
			ok <- success
		})).To(Succeed())

		Eventually(ok, time.Second).Should(Receive(BeTrue()))
		Eventually(done, time.Second).Should(Receive(Equal(7)))
	})

	It("should report failure and disconnect on peer close", func() {
		res := make(chan bool, 1)

		Expect(conn.AsyncRead(8, func(success bool, data []byte) {
			res <- success
		})).To(Succeed())

		_ = there.Close()

		Eventually(res, time.Second).Should(Receive(BeFalse()))
		Eventually(conn.IsConnected, time.Second, 5*time.Millisecond).Should(BeFalse())
	})

	It("should run disconnect callbacks once, in reverse registration order", func() {
		var order []int

		conn.OnDisconnect(func(id uint64) { order = append(order, 1) })
		conn.OnDisconnect(func(id uint64) { order = append(order, 2) })
		conn.OnDisconnect(func(id uint64) { order = append(order, 3) })

		conn.Disconnect()
		conn.Disconnect()

		Expect(order).To(Equal([]int{3, 2, 1}))
	})

	It("should fail reads and writes after disconnect without crashing", func() {
		conn.Disconnect()

		Expect(conn.IsConnected()).To(BeFalse())
		Expect(conn.AsyncRead(8, nil)).ToNot(Succeed())
		Expect(conn.AsyncWrite([]byte("x"), nil)).ToNot(Succeed())
	})

	It("should cancel the pending read when the timeout expires", func() {
		var timedOut atomic.Bool

		conn.SetTimeout(30*time.Millisecond, func() { timedOut.Store(true) })

		res := make(chan bool, 1)
		Expect(conn.AsyncRead(8, func(success bool, data []byte) {
			res <- success
		})).To(Succeed())

		Eventually(res, time.Second).Should(Receive(BeFalse()))
		Eventually(timedOut.Load, time.Second, 5*time.Millisecond).Should(BeTrue())
		Eventually(conn.IsConnected, time.Second, 5*time.Millisecond).Should(BeFalse())
	})

	It("should not fire the timeout once canceled", func() {
		var timedOut atomic.Bool

		conn.SetTimeout(50*time.Millisecond, func() { timedOut.Store(true) })
		conn.CancelTimeout()

		Consistently(timedOut.Load, 120*time.Millisecond).Should(BeFalse())
		Expect(conn.IsConnected()).To(BeTrue())
	})
})
