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

package app

import (
	"os"
	"os/signal"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
)

const exitCodeError = 1

type app struct {
	cfg Config
	mlo liblop.MainLoop

	sgi atomic.Bool // signal goroutine initiated
	sgt atomic.Bool // signal goroutine initiated the stop
	ecd atomic.Int64

	evt libatm.Value[Event]
	cbs libatm.Value[StartCallback]
	cbe libatm.Value[ExitCallback]
	cbf libatm.Value[FailCallback]
	cbc libatm.Value[ControlCallback]
	log libatm.Value[liblog.FuncLog]

	wm sync.Mutex
	wc *sync.Cond
}

func newApp(cfg Config) *app {
	a := &app{
		cfg: cfg,
		mlo: liblop.NewMain(executableName()),
		evt: libatm.NewValue[Event](),
		cbs: libatm.NewValue[StartCallback](),
		cbe: libatm.NewValue[ExitCallback](),
		cbf: libatm.NewValue[FailCallback](),
		cbc: libatm.NewValue[ControlCallback](),
		log: libatm.NewValue[liblog.FuncLog](),
	}

	a.wc = sync.NewCond(&a.wm)

	if cfg.EnableCorefile {
		enableCorefile()
	}

	if cfg.LockIO || cfg.Daemonize {
		lockIO()
	}

	return a
}

func (o *app) logger() liblog.Logger {
	if f := o.log.Load(); f != nil {
		if l := f(); l != nil {
			return l
		}
	}

	return liblog.GetDefault()
}

func (o *app) SetLogger(fct liblog.FuncLog) {
	o.log.Store(fct)
	o.mlo.SetLogger(fct)
}

func (o *app) register(store func()) error {
	if o.IsRunning() {
		return ErrorCallbackRunning.Error(nil)
	}

	store()
	return nil
}

func (o *app) OnStart(cb StartCallback) error {
	return o.register(func() { o.cbs.Store(cb) })
}

func (o *app) OnExit(cb ExitCallback) error {
	return o.register(func() { o.cbe.Store(cb) })
}

func (o *app) OnFail(cb FailCallback) error {
	return o.register(func() { o.cbf.Store(cb) })
}

func (o *app) OnControl(cb ControlCallback) error {
	return o.register(func() { o.cbc.Store(cb) })
}

func (o *app) IsRunning() bool {
	return o.mlo.IsRunning()
}

func (o *app) Loop() liblop.MainLoop {
	return o.mlo
}

func (o *app) LastSignal() Event {
	return o.evt.Load()
}

func (o *app) Wait() {
	o.wm.Lock()
	defer o.wm.Unlock()

	for !o.mlo.IsRunning() {
		o.wc.Wait()
	}
}

func (o *app) Stop(exitCode int) error {
	o.ecd.Store(int64(exitCode))
	return o.mlo.Stop()
}

func (o *app) Run() int {
	if o.IsRunning() {
		return exitCodeError
	}

	o.sgt.Store(false)

	var (
		sigCh  = make(chan os.Signal, 8)
		quit   = make(chan struct{})
		joined = make(chan struct{})
	)

	var all []os.Signal
	all = append(all, exitSignals()...)
	all = append(all, controlSignals()...)
	all = append(all, failSignals()...)

	signal.Notify(sigCh, all...)

	go o.signalLoop(sigCh, quit, joined)

	// the signal goroutine publishes initiated before Run enters the loop
	for !o.sgi.Load() {
		runtime.Gosched()
	}

	o.logger().Debug("application starting", nil)

	err := o.mlo.Start(func() {
		o.logger().Info("application has started", nil)

		if cb := o.cbs.Load(); cb != nil {
			cb()
		}

		o.wm.Lock()
		o.wc.Broadcast()
		o.wm.Unlock()
	}, nil)

	if err != nil {
		o.logger().CheckError("main loop refused to start", err)
		signal.Stop(sigCh)
		close(quit)
		<-joined
		o.cleanup()
		return exitCodeError
	}

	// something stopped the main loop
	o.logger().Info("application is stopping", nil)

	signal.Stop(sigCh)

	if !o.sgt.Load() {
		// the stop was not signal driven, unblock the signal goroutine
		close(quit)
		<-joined

		if cb := o.cbe.Load(); cb != nil {
			cb(0)
		}
	} else {
		<-joined
	}

	o.logger().Info("application has stopped", nil)

	code := int(o.ecd.Load())
	o.cleanup()

	return code
}

func (o *app) cleanup() {
	o.sgi.Store(false)
	o.sgt.Store(false)
}

// signalLoop is the signal goroutine body: it blocks waiting for
// delivered signals and fans them out per class. It never runs user
// tasks directly except the fail fan-out, everything else is posted to
// the main loop.
func (o *app) signalLoop(sigCh chan os.Signal, quit chan struct{}, joined chan struct{}) {
	defer close(joined)

	o.sgi.Store(true)

	o.logger().Debug("signal goroutine initiated", nil)

	for {
		select {
		case <-quit:
			return

		case s := <-sigCh:
			sig, ok := s.(syscall.Signal)
			if !ok {
				continue
			}

			o.logger().Info("got signal in signal goroutine", sig.String())

			if done := o.processSignal(sig); done {
				return
			}
		}
	}
}

// processSignal classifies one delivered signal; it returns true when
// the signal goroutine must leave.
func (o *app) processSignal(sig syscall.Signal) bool {
	if isFailSignal(sig) {
		o.processFail(sig)
		return true
	}

	if which, ok := isControlSignal(sig); ok {
		o.evt.Store(Event{Kind: EventControl, Signo: sig, Control: which})

		if cb := o.cbc.Load(); cb != nil {
			_ = o.mlo.Post(func() { cb(which) })
		} else {
			o.logger().Debug("control signal ignored", which.String())
		}

		return false
	}

	// exit class
	o.evt.Store(Event{Kind: EventExit, Signo: sig})
	o.sgt.Store(true)
	o.ecd.Store(int64(128 + int(sig)))

	if cb := o.cbe.Load(); cb != nil {
		o.mlo.Wait(func() { cb(sig) }, 0)
	}

	if err := o.mlo.Stop(); err != nil {
		o.logger().CheckError("stopping main loop from signal goroutine", err)
	}

	return true
}

// processFail captures the stack dump first, then fires the fail
// callback and terminates the process the way the signal would have.
func (o *app) processFail(sig syscall.Signal) {
	var dump string

	if o.cfg.StdumpFilePath != "" {
		if saveRawDump(o.cfg.StdumpFilePath, sig) > 0 {
			dump = o.cfg.StdumpFilePath
		}
	}

	o.evt.Store(Event{Kind: EventFail, Signo: sig, DumpPath: dump})

	if cb := o.cbf.Load(); cb != nil {
		cb(sig, dump)
	}

	o.terminate(128 + int(sig))
}

// terminate leaves the process; kept as a variable so the fail path can
// be exercised without killing the test binary.
var terminateProcess = func(code int) {
	os.Exit(code)
}

func (o *app) terminate(code int) {
	o.ecd.Store(int64(code))
	terminateProcess(code)
}
