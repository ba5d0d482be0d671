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

package connection

import (
	"sync"

	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	libbld "github.com/OpenBand/barbacoa-server-lib/network/builder"
	libunt "github.com/OpenBand/barbacoa-server-lib/network/unit"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"
)

type cnt struct {
	raw libsck.Connection
	prt libbld.UnitBuilder
	mgr libbld.Manager

	sbm sync.Mutex
	sbf []byte

	obm sync.Mutex
	rcv []ReceiveCallback
	dci []DisconnectIdCallback
	dcn []DisconnectCallback
}

func (o *cnt) logger() liblog.Logger {
	return liblog.GetDefault()
}

func (o *cnt) ID() uint64 {
	return o.raw.ID()
}

func (o *cnt) IsConnected() bool {
	return o.raw.IsConnected()
}

func (o *cnt) RemoteEndpoint() string {
	return o.raw.RemoteEndpoint()
}

func (o *cnt) Disconnect() {
	o.raw.Disconnect()
}

func (o *cnt) Protocol() libbld.UnitBuilder {
	return o.prt
}

func (o *cnt) Post(u libunt.Unit) Connection {
	if u == nil {
		return o
	}

	o.sbm.Lock()
	o.sbf = append(o.sbf, u.NetworkString()...)
	o.sbm.Unlock()

	return o
}

func (o *cnt) PostBytes(raw []byte) Connection {
	return o.Post(o.prt.Create(raw))
}

func (o *cnt) Commit() Connection {
	o.sbm.Lock()
	buf := o.sbf
	o.sbf = nil
	o.sbm.Unlock()

	if len(buf) < 1 {
		return o
	}

	if err := o.raw.AsyncWrite(buf, nil); err != nil {
		// peer went away in the meantime
		o.logger().Debug("commit on closed connection", err.Error())
	}

	return o
}

func (o *cnt) OnReceive(cb ReceiveCallback) Connection {
	if cb == nil {
		return o
	}

	o.obm.Lock()
	o.rcv = append(o.rcv, cb)
	o.obm.Unlock()

	return o
}

func (o *cnt) OnDisconnect(cb DisconnectCallback) Connection {
	if cb == nil {
		return o
	}

	o.obm.Lock()
	o.dcn = append(o.dcn, cb)
	o.obm.Unlock()

	return o
}

func (o *cnt) OnDisconnectId(cb DisconnectIdCallback) Connection {
	if cb == nil {
		return o
	}

	o.obm.Lock()
	o.dci = append(o.dci, cb)
	o.obm.Unlock()

	return o
}

func (o *cnt) AsyncRead() {
	if err := o.raw.AsyncRead(0, o.onRawReceive); err != nil {
		// peer went away in the meantime
		o.logger().Debug("read on closed connection", err.Error())
	}
}

// onRawReceive feeds the chunk into the builder manager, delivers every
// completed unit in order, then re-issues the read. Ill-formed framing
// disconnects instead of crashing.
func (o *cnt) onRawReceive(success bool, data []byte) {
	if !success {
		return
	}

	if err := o.mgr.Feed(data); err != nil {
		o.logger().CheckError("could not build unit (invalid format), disconnecting", err)
		o.raw.Disconnect()
		return
	}

	for o.IsConnected() && o.mgr.ReceiveAvailable() {
		u, err := o.mgr.PopFront()
		if err != nil {
			break
		}

		o.obm.Lock()
		cbs := make([]ReceiveCallback, len(o.rcv))
		copy(cbs, o.rcv)
		o.obm.Unlock()

		for _, cb := range cbs {
			cb(o, u)
		}
	}

	o.AsyncRead()
}

// onDisconnected runs on the single transport teardown notification:
// the send buffer is dropped, then the id observers fire before the
// plain observers, each exactly once.
func (o *cnt) onDisconnected(id uint64) {
	o.sbm.Lock()
	o.sbf = nil
	o.sbm.Unlock()

	o.obm.Lock()
	dci := make([]DisconnectIdCallback, len(o.dci))
	copy(dci, o.dci)
	dcn := make([]DisconnectCallback, len(o.dcn))
	copy(dcn, o.dcn)
	o.obm.Unlock()

	for _, cb := range dci {
		cb(id)
	}

	for _, cb := range dcn {
		cb()
	}
}
