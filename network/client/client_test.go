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

package client_test

import (
	"fmt"
	"net"
	"sync/atomic"
	"time"

	libdur "github.com/OpenBand/barbacoa-server-lib/duration"
	libbld "github.com/OpenBand/barbacoa-server-lib/network/builder"
	libclt "github.com/OpenBand/barbacoa-server-lib/network/client"
	libcnt "github.com/OpenBand/barbacoa-server-lib/network/connection"
	libsrv "github.com/OpenBand/barbacoa-server-lib/network/server"
	libunt "github.com/OpenBand/barbacoa-server-lib/network/unit"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func getFreePort() int {
	adr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	Expect(err).ToNot(HaveOccurred())

	lis, err := net.ListenTCP("tcp", adr)
	Expect(err).ToNot(HaveOccurred())

	defer func() {
		_ = lis.Close()
	}()

	return lis.Addr().(*net.TCPAddr).Port
}

// echoServer starts a server echoing every unit back on the given address.
func echoServer(addr string) libsrv.Server {
	srv := libsrv.New()

	srv.OnNewConnection(func(c libcnt.Connection) {
		c.OnReceive(func(cn libcnt.Connection, u libunt.Unit) {
			cn.Post(cn.Protocol().Create(u.Bytes())).Commit()
		})
	})

	cfg := libsrv.ConfigTcp()
	cfg.Transport.Address = addr
	cfg.Transport.WorkerThreads = 2
	cfg.Protocol = libbld.NewMessage(1024)

	Expect(srv.Start(cfg)).To(Succeed())
	Expect(srv.Wait(false, 2*time.Second)).To(BeTrue())

	return srv
}

func clientConfig(addr string) libclt.Config {
	cfg := libclt.ConfigTcp()
	cfg.Transport.Address = addr
	cfg.Transport.TimeoutConnect = libdur.Seconds(2)
	cfg.Protocol = libbld.NewMessage(1024)
	return cfg
}

var _ = Describe("Network Client", func() {
	Context("connect and exchange", func() {
		It("should round trip a unit through the echo server", func() {
			addr := fmt.Sprintf("127.0.0.1:%d", getFreePort())

			srv := echoServer(addr)
			defer func() {
				_ = srv.Stop(true)
			}()

			cl := libclt.New()
			defer func() {
				_ = cl.Stop()
			}()

			got := make(chan []byte, 1)

			cl.OnConnect(func(c libcnt.Connection) {
				c.OnReceive(func(cn libcnt.Connection, u libunt.Unit) {
					got <- u.Bytes()
				})

				c.PostBytes([]byte("hello over tcp")).Commit()
			})

			Expect(cl.Connect(clientConfig(addr))).To(Succeed())

			var data []byte
			Eventually(got, 2*time.Second).Should(Receive(&data))
			Expect(data).To(Equal([]byte("hello over tcp")))

			Expect(cl.Connection()).ToNot(BeNil())
		})

		It("should release the connection and report on server side close", func() {
			addr := fmt.Sprintf("127.0.0.1:%d", getFreePort())

			srv := echoServer(addr)

			cl := libclt.New()
			defer func() {
				_ = cl.Stop()
			}()

			gone := make(chan struct{}, 1)

			cl.OnConnect(func(c libcnt.Connection) {
				c.OnDisconnect(func() { gone <- struct{}{} })
			})

			Expect(cl.Connect(clientConfig(addr))).To(Succeed())
			Eventually(cl.Connection, 2*time.Second, 10*time.Millisecond).ShouldNot(BeNil())

			Expect(srv.Stop(true)).To(Succeed())

			Eventually(gone, 2*time.Second).Should(Receive())
			Eventually(cl.Connection, 2*time.Second, 10*time.Millisecond).Should(BeNil())
		})

		It("should fire the fail callback when nothing listens", func() {
			addr := fmt.Sprintf("127.0.0.1:%d", getFreePort())

			cl := libclt.New()
			defer func() {
				_ = cl.Stop()
			}()

			failed := make(chan error, 1)
			cl.OnFail(func(err error) { failed <- err })

			Expect(cl.Connect(clientConfig(addr))).To(Succeed())

			Eventually(failed, 3*time.Second).Should(Receive(HaveOccurred()))
			Expect(cl.Connection()).To(BeNil())
		})

		It("should refuse a connect without protocol template", func() {
			cfg := libclt.ConfigTcp()
			cfg.Transport.Address = "127.0.0.1:1"

			Expect(libclt.New().Connect(cfg)).ToNot(Succeed())
		})
	})

	Context("reconnect after server restart", func() {
		It("should abandon superseded attempts and only serve the last one", func() {
			addr := fmt.Sprintf("127.0.0.1:%d", getFreePort())

			// first server generation
			srv := echoServer(addr)
			Expect(srv.Stop(true)).To(Succeed())

			// second generation on the same port
			srv = echoServer(addr)
			defer func() {
				_ = srv.Stop(true)
			}()

			cl := libclt.New()

			var (
				attempt  atomic.Int32
				received = make(chan []byte, 4)
			)

			cl.OnConnect(func(c libcnt.Connection) {
				attempt.Add(1)

				c.OnReceive(func(cn libcnt.Connection, u libunt.Unit) {
					received <- u.Bytes()
				})
			})

			// the first two attempts are superseded by the caller before use
			Expect(cl.Connect(clientConfig(addr))).To(Succeed())
			Expect(cl.Connect(clientConfig(addr))).To(Succeed())
			Expect(cl.Connect(clientConfig(addr))).To(Succeed())

			Eventually(func() int32 { return attempt.Load() }, 3*time.Second, 10*time.Millisecond).
				Should(BeNumerically(">=", 1))

			// whatever attempt survived is the only live connection
			Eventually(cl.Connection, 3*time.Second, 10*time.Millisecond).ShouldNot(BeNil())

			last := cl.Connection()
			last.PostBytes([]byte("third time lucky")).Commit()

			var data []byte
			Eventually(received, 3*time.Second).Should(Receive(&data))
			Expect(data).To(Equal([]byte("third time lucky")))

			// abandoned attempts fire nothing further once the client stopped
			Expect(cl.Stop()).To(Succeed())
			Consistently(received, 200*time.Millisecond).ShouldNot(Receive())
		})
	})
})
