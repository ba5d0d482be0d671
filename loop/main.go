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

package loop

import (
	"sync/atomic"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
)

// MainLoop is the distinguished loop running on the goroutine that
// started it, owning the process exit path. At most one main loop runs
// per process at any time.
type MainLoop interface {
	Loop

	//SetExitCallback registers the callback invoked on the loop when
	// Exit is requested
	SetExitCallback(cb Task)

	//Exit invokes the exit callback on the loop, records the exit code
	// and stops the loop. It must not be called from a loop worker.
	Exit(code int) error

	//ExitCode returns the recorded exit code
	ExitCode() int
}

// mainRunning enforces the single running main loop per process.
var mainRunning atomic.Bool

// NewMain creates an inert main loop. Start borrows the calling
// goroutine as the loop's only worker and blocks until the loop stops.
func NewMain(name string) MainLoop {
	l := &mlp{
		lop: newLoop(1, true),
		ecb: libatm.NewValue[Task](),
	}

	if name != "" {
		l.ChangeThreadName(name)
	}

	return l
}

type mlp struct {
	*lop

	ecb libatm.Value[Task]
	ecd atomic.Int64
}

func (o *mlp) Start(onStart Task, onStop Task) error {
	if !mainRunning.CompareAndSwap(false, true) {
		return ErrorMainRunning.Error(nil)
	}

	defer mainRunning.Store(false)

	return o.lop.Start(onStart, onStop)
}

func (o *mlp) SetExitCallback(cb Task) {
	o.ecb.Store(cb)
}

func (o *mlp) Exit(code int) error {
	o.ecd.Store(int64(code))

	if !o.IsRunning() {
		return ErrorNotRunning.Error(nil)
	}

	if cb := o.ecb.Load(); cb != nil {
		o.Wait(cb, 0)
	}

	return o.Stop()
}

func (o *mlp) ExitCode() int {
	return int(o.ecd.Load())
}
