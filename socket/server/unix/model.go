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
	"errors"
	"net"
	"os"
	"sync/atomic"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"
	sckcfg "github.com/OpenBand/barbacoa-server-lib/socket/config"
)

type srv struct {
	cfg sckcfg.Server
	lop libatm.Value[liblop.Loop]
	lis libatm.Value[net.Listener]
	nid atomic.Uint64
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

	if l := o.lop.Load(); l != nil {
		l.SetLogger(fct)
	}
}

func (o *srv) Loop() liblop.Loop {
	return o.lop.Load()
}

func (o *srv) IsRunning() bool {
	if l := o.lop.Load(); l != nil {
		return l.IsRunning()
	}

	return false
}

func (o *srv) workers() int {
	if o.cfg.WorkerThreads < 1 {
		return 1
	}

	return o.cfg.WorkerThreads
}

func (o *srv) Start(onStart libsck.StartCallback, onNew libsck.NewConnectionCallback, onFail libsck.FailCallback) error {
	if o.IsRunning() {
		return libsck.ErrorAlreadyRunning.Error(nil)
	}

	l, err := liblop.New(o.workers())
	if err != nil {
		return err
	}

	if o.cfg.WorkerName != "" {
		l.ChangeThreadName(o.cfg.WorkerName)
	}

	l.SetLogger(o.log.Load())
	o.lop.Store(l)

	return l.Start(func() {
		o.logger().Debug("unix acceptor starting", o.cfg.Address)

		if o.cfg.ReuseAddress {
			// drop a stale socket file left by a previous run
			_ = os.Remove(o.cfg.Address)
		}

		lis, er := net.Listen(o.cfg.Network.Code(), o.cfg.Address)
		if er != nil {
			o.logger().CheckError("unix acceptor listen", er)

			if onFail != nil {
				onFail(libsck.ErrorListenFailed.Error(er))
			}

			return
		}

		o.lis.Store(lis)

		go o.accept(lis, l, onNew, onFail)

		o.logger().Info("unix acceptor started", o.cfg.Address)

		if onStart != nil {
			onStart()
		}
	}, nil)
}

func (o *srv) accept(lis net.Listener, l liblop.Loop, onNew libsck.NewConnectionCallback, onFail libsck.FailCallback) {
	for {
		id := o.nid.Add(1)

		cn, err := lis.Accept()

		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}

			o.logger().CheckError("unix acceptor accept", err)

			if onFail != nil {
				fe := err
				_ = l.PostUnordered(func() { onFail(fe) })
			}

			continue
		}

		conn := libsck.NewConnection(cn, id, o.cfg.ChunkSize, l, o.log.Load())
		conn.SetOpTimeouts(o.cfg.TimeoutRead.Time(), o.cfg.TimeoutWrite.Time())

		o.logger().Debug("unix connection accepted", conn.ID())

		if onNew != nil {
			_ = l.PostUnordered(func() { onNew(conn) })
		}
	}
}

func (o *srv) Stop() error {
	l := o.lop.Load()

	if l == nil || !l.IsRunning() {
		return nil
	}

	if l.IsThisLoop() {
		return libsck.ErrorStopInWorker.Error(nil)
	}

	if lis := o.lis.Swap(nil); lis != nil {
		_ = lis.Close()
	}

	defer func() {
		// the socket file is owned by this acceptor
		_ = os.Remove(o.cfg.Address)
	}()

	o.logger().Info("unix acceptor stopping", o.cfg.Address)

	err := l.Stop()

	// a start task drained by the stop may have bound a listener meanwhile
	if lis := o.lis.Swap(nil); lis != nil {
		_ = lis.Close()
	}

	return err
}
