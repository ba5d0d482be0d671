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

// helper_test.go provides shared fixtures: free port allocation, server
// configuration shorthands and raw peer helpers speaking the
// length-prefixed framing.
package server_test

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	libbld "github.com/OpenBand/barbacoa-server-lib/network/builder"
	libsrv "github.com/OpenBand/barbacoa-server-lib/network/server"

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

func getTestAddr() string {
	return fmt.Sprintf("127.0.0.1:%d", getFreePort())
}

func msgConfig(addr string, workers int, maxPayload uint32) libsrv.Config {
	cfg := libsrv.ConfigTcp()
	cfg.Transport.Address = addr
	cfg.Transport.WorkerThreads = workers
	cfg.Protocol = libbld.NewMessage(maxPayload)
	return cfg
}

func unixConfig(path string) libsrv.Config {
	cfg := libsrv.ConfigUnixLocal()
	cfg.Transport.Address = path
	cfg.Protocol = libbld.NewMessage(1024)
	return cfg
}

func startServer(cfg libsrv.Config, srv libsrv.Server) {
	Expect(srv.Start(cfg)).To(Succeed())
	Expect(srv.Wait(false, 2*time.Second)).To(BeTrue())
}

// rawPeer is a plain socket speaking the length-prefixed framing,
// playing the remote side without the library.
type rawPeer struct {
	cn net.Conn
}

func dialPeer(network, addr string) *rawPeer {
	var (
		cn  net.Conn
		err error
	)

	for i := 0; i < 50; i++ {
		cn, err = net.DialTimeout(network, addr, time.Second)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	Expect(err).ToNot(HaveOccurred())

	return &rawPeer{cn: cn}
}

func (p *rawPeer) send(payload []byte) {
	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[4:], payload)

	_, err := p.cn.Write(buf)
	Expect(err).ToNot(HaveOccurred())
}

func (p *rawPeer) sendRaw(buf []byte) {
	_, _ = p.cn.Write(buf)
}

func (p *rawPeer) recv(timeout time.Duration) []byte {
	_ = p.cn.SetReadDeadline(time.Now().Add(timeout))

	head := make([]byte, 4)
	_, err := io.ReadFull(p.cn, head)
	Expect(err).ToNot(HaveOccurred())

	payload := make([]byte, binary.BigEndian.Uint32(head))
	_, err = io.ReadFull(p.cn, payload)
	Expect(err).ToNot(HaveOccurred())

	return payload
}

// waitClosed returns true once the peer socket reports remote closure.
func (p *rawPeer) waitClosed(timeout time.Duration) bool {
	_ = p.cn.SetReadDeadline(time.Now().Add(timeout))

	buf := make([]byte, 1)
	_, err := p.cn.Read(buf)

	return err != nil
}

func (p *rawPeer) close() {
	_ = p.cn.Close()
}
