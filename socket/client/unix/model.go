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

package unix

import (
	"net"
	"sync/atomic"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"
	sckcfg "github.com/OpenBand/barbacoa-server-lib/socket/config"
)

type cli struct {
	cfg sckcfg.Client
	lop libatm.Value[liblop.Loop]
	cnx libatm.Value[libsck.Connection]
	nid atomic.Uint64
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

	if l := o.lop.Load(); l != nil {
		l.SetLogger(fct)
	}
}

func (o *cli) Loop() liblop.Loop {
	return o.lop.Load()
}

func (o *cli) IsRunning() bool {
	if l := o.lop.Load(); l != nil {
		return l.IsRunning()
	}

	return false
}

func (o *cli) Connect(onConnect libsck.ConnectCallback, onFail libsck.FailCallback) error {
	l := o.lop.Load()

	if l == nil || !l.IsRunning() {
		var err error

		if l, err = liblop.New(1); err != nil {
			return err
		}

		if o.cfg.WorkerName != "" {
			l.ChangeThreadName(o.cfg.WorkerName)
		}

		l.SetLogger(o.log.Load())
		o.lop.Store(l)

		if err = l.Start(nil, nil); err != nil {
			return err
		}
	}

	go o.dial(l, onConnect, onFail)

	return nil
}

func (o *cli) dial(l liblop.Loop, onConnect libsck.ConnectCallback, onFail libsck.FailCallback) {
	o.logger().Debug("unix client dialing", o.cfg.Address)

	cn, err := net.DialTimeout(o.cfg.Network.Code(), o.cfg.Address, o.cfg.TimeoutConnect.Time())

	if err != nil {
		o.logger().CheckError("unix client dial", err)

		if onFail != nil {
			fe := libsck.ErrorDialFailed.Error(err)
			_ = l.PostUnordered(func() { onFail(fe) })
		}

		return
	}

	conn := libsck.NewConnection(cn, o.nid.Add(1), o.cfg.ChunkSize, l, o.log.Load())

	o.cnx.Store(conn)

	o.logger().Info("unix client connected", o.cfg.Address)

	if onConnect != nil {
		_ = l.PostUnordered(func() { onConnect(conn) })
	}
}

func (o *cli) Stop() error {
	if c := o.cnx.Swap(nil); c != nil {
		c.Disconnect()
	}

	l := o.lop.Load()

	if l == nil || !l.IsRunning() {
		return nil
	}

	if l.IsThisLoop() {
		return libsck.ErrorStopInWorker.Error(nil)
	}

	return l.Stop()
}
