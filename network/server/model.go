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

package server

import (
	"time"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
	libbld "github.com/OpenBand/barbacoa-server-lib/network/builder"
	libcnt "github.com/OpenBand/barbacoa-server-lib/network/connection"
	libptc "github.com/OpenBand/barbacoa-server-lib/network/protocol"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"
	scksrt "github.com/OpenBand/barbacoa-server-lib/socket/server/tcp"
	scksru "github.com/OpenBand/barbacoa-server-lib/socket/server/unix"
)

type srv struct {
	imp libatm.Value[libsck.Server]
	prt libatm.Value[libbld.UnitBuilder]

	cbs libatm.Value[StartCallback]
	cbn libatm.Value[NewConnectionCallback]
	cbf libatm.Value[FailCallback]

	cnx libatm.Map[uint64, libcnt.Connection]
	log libatm.Value[liblog.FuncLog]
}

func (o *srv) logger() liblog.Logger {
	if f := o.log.Load(); f != nil {
		if l := f(); l != nil {
			return l
		}
	}

	return liblog.GetDefault()
}

func (o *srv) SetLogger(fct liblog.FuncLog) {
	o.log.Store(fct)

	if i := o.imp.Load(); i != nil {
		i.SetLogger(fct)
	}
}

func (o *srv) OnStart(cb StartCallback) Server {
	o.cbs.Store(cb)
	return o
}

func (o *srv) OnNewConnection(cb NewConnectionCallback) Server {
	o.cbn.Store(cb)
	return o
}

func (o *srv) OnFail(cb FailCallback) Server {
	o.cbf.Store(cb)
	return o
}

func (o *srv) IsRunning() bool {
	if i := o.imp.Load(); i != nil {
		return i.IsRunning()
	}

	return false
}

func (o *srv) newImpl(cfg Config) (libsck.Server, error) {
	switch cfg.Transport.Network {
	case libptc.NetworkUnix:
		return scksru.New(cfg.Transport)
	default:
		return scksrt.New(cfg.Transport)
	}
}

func (o *srv) Start(cfg Config) error {
	if o.IsRunning() {
		return libsck.ErrorAlreadyRunning.Error(nil)
	}

	if cfg.Protocol == nil {
		return ErrorProtocolMissing.Error(nil)
	}

	imp, err := o.newImpl(cfg)
	if err != nil {
		return err
	}

	imp.SetLogger(o.log.Load())

	o.prt.Store(cfg.Protocol)
	o.imp.Store(imp)

	return imp.Start(o.onStarted, o.onNewClient, o.onFailed)
}

func (o *srv) onStarted() {
	if cb := o.cbs.Load(); cb != nil {
		cb()
	}
}

func (o *srv) onFailed(err error) {
	o.logger().CheckError("server transport failure", err)

	if cb := o.cbf.Load(); cb != nil {
		cb(err)
	}
}

// onNewClient wraps the accepted transport connection and runs the
// table insert, user callback, first read sequence.
func (o *srv) onNewClient(raw libsck.Connection) {
	if !o.IsRunning() {
		return
	}

	prt := o.prt.Load()
	if prt == nil {
		return
	}

	conn := libcnt.New(raw, prt)

	conn.OnDisconnectId(o.onClientDisconnected)

	o.cnx.Store(conn.ID(), conn)

	o.logger().Debug("new client connection", conn.ID())

	if cb := o.cbn.Load(); cb != nil {
		cb(conn)
	}

	conn.AsyncRead()
}

func (o *srv) onClientDisconnected(id uint64) {
	o.cnx.Delete(id)

	o.logger().Debug("client connection removed", id)
}

func (o *srv) Stop(waitForRemoval bool) error {
	imp := o.imp.Load()

	if imp == nil || !imp.IsRunning() {
		return nil
	}

	if l := imp.Loop(); l != nil && l.IsThisLoop() {
		return libsck.ErrorStopInWorker.Error(nil)
	}

	o.logger().Debug("server stopping", nil)

	// the acceptor goes down first so no connection appears afterwards
	err := imp.Stop()

	if waitForRemoval {
		o.cnx.Range(func(id uint64, c libcnt.Connection) bool {
			c.Disconnect()
			return true
		})
	}

	o.cnx.Range(func(id uint64, c libcnt.Connection) bool {
		o.cnx.Delete(id)
		return true
	})

	o.prt.Store(nil)

	o.logger().Info("server stopped", nil)

	return err
}

func (o *srv) Wait(untilStop bool, timeout time.Duration) bool {
	var deadline time.Time

	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for !o.IsRunning() {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return false
		}

		time.Sleep(5 * time.Millisecond)
	}

	for untilStop && o.IsRunning() {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return false
		}

		time.Sleep(5 * time.Millisecond)
	}

	return true
}

func (o *srv) Post(t liblop.Task) error {
	imp := o.imp.Load()

	if imp == nil || !imp.IsRunning() {
		return libsck.ErrorNotRunning.Error(nil)
	}

	return imp.Loop().PostUnordered(t)
}

func (o *srv) OpenConnections() int {
	return o.cnx.Len()
}

func (o *srv) GetConnection(id uint64) libcnt.Connection {
	if c, ok := o.cnx.Load(id); ok {
		return c
	}

	return nil
}
