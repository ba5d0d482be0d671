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

package client

import (
	"sync/atomic"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
	libcnt "github.com/OpenBand/barbacoa-server-lib/network/connection"
	libptc "github.com/OpenBand/barbacoa-server-lib/network/protocol"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"
	sckclt "github.com/OpenBand/barbacoa-server-lib/socket/client/tcp"
	sckclu "github.com/OpenBand/barbacoa-server-lib/socket/client/unix"
)

type cli struct {
	imp libatm.Value[libsck.Client]
	gen atomic.Uint64

	cbc libatm.Value[ConnectCallback]
	cbf libatm.Value[FailCallback]
	cnx libatm.Value[libcnt.Connection]
	log libatm.Value[liblog.FuncLog]
}

func (o *cli) logger() liblog.Logger {
	if f := o.log.Load(); f != nil {
		if l := f(); l != nil {
			return l
		}
	}

	return liblog.GetDefault()
}

func (o *cli) SetLogger(fct liblog.FuncLog) {
	o.log.Store(fct)

	if i := o.imp.Load(); i != nil {
		i.SetLogger(fct)
	}
}

func (o *cli) OnConnect(cb ConnectCallback) Client {
	o.cbc.Store(cb)
	return o
}

func (o *cli) OnFail(cb FailCallback) Client {
	o.cbf.Store(cb)
	return o
}

func (o *cli) Connection() libcnt.Connection {
	return o.cnx.Load()
}

func (o *cli) newImpl(cfg Config) (libsck.Client, error) {
	switch cfg.Transport.Network {
	case libptc.NetworkUnix:
		return sckclu.New(cfg.Transport)
	default:
		return sckclt.New(cfg.Transport)
	}
}

func (o *cli) Connect(cfg Config) error {
	if cfg.Protocol == nil {
		return ErrorProtocolMissing.Error(nil)
	}

	// abandon any previous attempt or connection
	o.clear()

	gen := o.gen.Add(1)

	imp, err := o.newImpl(cfg)
	if err != nil {
		return err
	}

	imp.SetLogger(o.log.Load())

	if old := o.imp.Swap(imp); old != nil {
		_ = old.Stop()
	}

	o.logger().Debug("client attempts to connect", cfg.Transport.Address)

	return imp.Connect(func(raw libsck.Connection) {
		o.onConnected(gen, cfg, raw)
	}, func(err error) {
		o.onFailed(gen, err)
	})
}

func (o *cli) onConnected(gen uint64, cfg Config, raw libsck.Connection) {
	if o.gen.Load() != gen {
		// a newer attempt superseded this one
		raw.Disconnect()
		return
	}

	conn := libcnt.New(raw, cfg.Protocol)

	conn.OnDisconnectId(func(id uint64) { o.onDisconnected(gen, id) })

	o.cnx.Store(conn)

	o.logger().Info("client connected", conn.RemoteEndpoint())

	if cb := o.cbc.Load(); cb != nil {
		cb(conn)
	}

	conn.AsyncRead()
}

func (o *cli) onFailed(gen uint64, err error) {
	if o.gen.Load() != gen {
		return
	}

	o.logger().CheckError("client connect failure", err)

	if cb := o.cbf.Load(); cb != nil {
		cb(err)
	}
}

func (o *cli) onDisconnected(gen uint64, id uint64) {
	if o.gen.Load() != gen {
		return
	}

	o.logger().Debug("client has been disconnected", id)

	o.cnx.Store(nil)
}

func (o *cli) clear() {
	if c := o.cnx.Swap(nil); c != nil {
		c.Disconnect()
	}
}

func (o *cli) Post(t liblop.Task) error {
	imp := o.imp.Load()

	if imp == nil || !imp.IsRunning() {
		return libsck.ErrorNotRunning.Error(nil)
	}

	return imp.Loop().PostUnordered(t)
}

func (o *cli) Stop() error {
	o.gen.Add(1)

	o.clear()

	if imp := o.imp.Swap(nil); imp != nil {
		return imp.Stop()
	}

	return nil
}
