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

package socket

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
)

// DefaultChunkSize is the read chunk size when none is configured.
const DefaultChunkSize = 4096

// NewConnection wraps an established net.Conn into the transport
// connection contract, posting completions on the given loop.
func NewConnection(cn net.Conn, id uint64, chunk int, l liblop.Loop, log liblog.FuncLog) Connection {
	if chunk < 1 {
		chunk = DefaultChunkSize
	}

	c := &cnn{
		id:  id,
		cn:  cn,
		chk: chunk,
		lop: l,
		log: libatm.NewValue[liblog.FuncLog](),
	}

	if addr := cn.RemoteAddr(); addr != nil {
		c.rmt = addr.String()
	}

	c.con.Store(true)
	c.log.Store(log)

	return c
}

type cnn struct {
	id  uint64
	cn  net.Conn
	rmt string
	chk int
	lop liblop.Loop

	con atomic.Bool
	rdp atomic.Bool
	wrm sync.Mutex

	dcm sync.Mutex
	dcb []DisconnectCallback

	tmm sync.Mutex
	tmr *time.Timer

	rto time.Duration
	wto time.Duration

	lat ScopeRunner
	log libatm.Value[liblog.FuncLog]
}

// SetOpTimeouts bounds each read and write operation with a deadline;
// an expired deadline surfaces as an error on the pending completion
// and disconnects. Zero disables the bound.
func (o *cnn) SetOpTimeouts(read time.Duration, write time.Duration) {
	o.rto = read
	o.wto = write
}

func (o *cnn) logger() liblog.Logger {
	if f := o.log.Load(); f != nil {
		if l := f(); l != nil {
			return l
		}
	}

	return liblog.GetDefault()
}

func (o *cnn) ID() uint64 {
	return o.id
}

func (o *cnn) RemoteEndpoint() string {
	return o.rmt
}

func (o *cnn) IsConnected() bool {
	return o.con.Load()
}

func (o *cnn) ChunkSize() int {
	return o.chk
}

func (o *cnn) post(t liblop.Task) {
	if err := o.lop.PostUnordered(t); err != nil {
		// loop going down, run the completion inline instead of losing it
		t()
	}
}

func (o *cnn) AsyncRead(size int, cb ReadCallback) error {
	if !o.IsConnected() {
		return ErrorNotConnected.Error(nil)
	}

	if size < 1 {
		size = o.chk
	}

	if !o.rdp.CompareAndSwap(false, true) {
		return ErrorReadPending.Error(nil)
	}

	go o.readOnce(size, cb)

	return nil
}

func (o *cnn) readOnce(size int, cb ReadCallback) {
	buf := make([]byte, size)

	if o.rto > 0 {
		_ = o.cn.SetReadDeadline(time.Now().Add(o.rto))
	}

	n, err := o.cn.Read(buf)

	o.rdp.Store(false)

	release, ok := o.lat.ContinueLock()
	if !ok {
		return
	}
	release()

	if err != nil && n < 1 {
		if cb != nil {
			o.post(func() { cb(false, nil) })
		}

		o.Disconnect()
		return
	}

	if cb != nil {
		data := buf[:n]
		o.post(func() { cb(true, data) })
	}

	if err != nil {
		o.Disconnect()
	}
}

func (o *cnn) AsyncWrite(data []byte, cb WriteCallback) error {
	if !o.IsConnected() {
		return ErrorNotConnected.Error(nil)
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	go o.writeOnce(buf, cb)

	return nil
}

func (o *cnn) writeOnce(data []byte, cb WriteCallback) {
	o.wrm.Lock()
	defer o.wrm.Unlock()

	release, ok := o.lat.ContinueLock()
	if !ok {
		return
	}
	release()

	if o.wto > 0 {
		_ = o.cn.SetWriteDeadline(time.Now().Add(o.wto))
	}

	n, err := o.cn.Write(data)

	if err != nil {
		if cb != nil {
			o.post(func() { cb(false, n) })
		}

		o.Disconnect()
		return
	}

	if cb != nil {
		o.post(func() { cb(true, n) })
	}
}

func (o *cnn) SetTimeout(d time.Duration, onTimeout func()) {
	if d <= 0 {
		return
	}

	o.tmm.Lock()
	defer o.tmm.Unlock()

	if o.tmr != nil {
		o.tmr.Stop()
	}

	o.tmr = time.AfterFunc(d, func() {
		if !o.IsConnected() {
			return
		}

		if onTimeout != nil {
			onTimeout()
		}

		// canceling the socket surfaces as an error on the pending completion
		_ = o.cn.SetDeadline(time.Unix(1, 0))
	})
}

func (o *cnn) CancelTimeout() {
	o.tmm.Lock()
	defer o.tmm.Unlock()

	if o.tmr != nil {
		o.tmr.Stop()
		o.tmr = nil
	}
}

func (o *cnn) OnDisconnect(cb DisconnectCallback) {
	if cb == nil {
		return
	}

	o.dcm.Lock()
	defer o.dcm.Unlock()

	o.dcb = append(o.dcb, cb)
}

func (o *cnn) Disconnect() {
	if !o.con.CompareAndSwap(true, false) {
		return
	}

	o.logger().Debug("transport connection disconnecting", o.id)

	o.CancelTimeout()

	// closing the socket unblocks any pending read or write
	_ = o.cn.Close()

	o.lat.Stop()

	o.dcm.Lock()
	cbs := make([]DisconnectCallback, len(o.dcb))
	copy(cbs, o.dcb)
	o.dcm.Unlock()

	for i := len(cbs) - 1; i >= 0; i-- {
		cbs[i](o.id)
	}
}
