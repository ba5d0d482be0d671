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

// Package app provides the process supervisor: the once-initializable
// owner of the main loop, the signal goroutine, crash dump capture and
// the process exit code.
//
// The supervisor partitions OS signals into three classes: fail signals
// capture a stack dump and fire the fail callback before terminating;
// exit signals (TERM, INT, HUP, QUIT) run the exit callback on the main
// loop and stop it with code 128 plus the signal number; control
// signals (USR1, USR2) are forwarded to the control callback.
//
// Example usage:
//
//	func main() {
//	    a, err := app.Init(app.Config{})
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    a.OnExit(func(sig syscall.Signal) { /* teardown */ })
//	    os.Exit(a.Run())
//	}
package app

import (
	"sync/atomic"
	"syscall"

	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
)

// StartCallback runs on the main loop when the supervisor started.
type StartCallback func()

// ExitCallback runs when the process is asked to leave. For an exit
// signal it runs on the main loop with that signal number; for a
// programmatic stop it runs with signo zero on the Run goroutine, after
// the main loop stopped.
type ExitCallback func(signo syscall.Signal)

// FailCallback runs when a fail-class signal was delivered; dumpPath is
// empty when no stack dump could be written.
type FailCallback func(signo syscall.Signal, dumpPath string)

// ControlCallback runs on the main loop for each user control signal.
type ControlCallback func(sig ControlSignal)

// App is the process supervisor contract.
type App interface {
	//OnStart registers the callback invoked on the main loop right
	// after it started. Registration fails while running.
	OnStart(cb StartCallback) error
	//OnExit registers the exit callback
	OnExit(cb ExitCallback) error
	//OnFail registers the fail callback
	OnFail(cb FailCallback) error
	//OnControl registers the user-signal callback
	OnControl(cb ControlCallback) error

	//Run spawns the signal goroutine and runs the main loop on the
	// calling goroutine until the process is asked to leave. It returns
	// the process exit code.
	Run() int

	//Stop stops the main loop with the given exit code
	Stop(exitCode int) error

	//Wait blocks the caller until the main loop runs
	Wait()

	//Loop returns the supervisor main loop
	Loop() liblop.MainLoop

	//IsRunning returns true while the main loop runs
	IsRunning() bool

	//LastSignal returns the last recorded signal event
	LastSignal() Event

	//SetLogger registers the logger accessor used by the supervisor
	SetLogger(fct liblog.FuncLog)
}

var initialized atomic.Pointer[app]

// Init initializes the process supervisor. It must be called from the
// process main goroutine before any other goroutine or thread was
// created, and at most once per process: safe signal blocking needs the
// handler table installed before any concurrency exists.
func Init(cfg Config) (App, error) {
	if !liblop.IsMainThread() {
		return nil, ErrorNotMainThread.Error(nil)
	}

	if err := checkNoOtherThreads(); err != nil {
		return nil, err
	}

	return initApp(cfg)
}

func initApp(cfg Config) (App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := newApp(cfg)

	if !initialized.CompareAndSwap(nil, a) {
		return nil, ErrorAlreadyInit.Error(nil)
	}

	return a, nil
}

// Get returns the initialized supervisor, or nil before Init succeeded.
func Get() App {
	if a := initialized.Load(); a != nil {
		return a
	}

	return nil
}
