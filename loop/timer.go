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
	"time"
)

// tmr is the one-shot timer handle returned by Loop.StartTimer.
type tmr struct {
	armed atomic.Bool
	t     *time.Timer
}

func (o *tmr) Stop() {
	if o.armed.CompareAndSwap(true, false) {
		if o.t != nil {
			o.t.Stop()
		}
	}
}

func (o *tmr) IsArmed() bool {
	return o.armed.Load()
}

// PeriodicalTimer fires its callback repeatedly on a loop; the next
// firing is scheduled when the previous callback completed, so slow
// callbacks never pile up.
type PeriodicalTimer interface {
	//Start arms the timer with the given period
	Start(d time.Duration, callback Task) error

	//Stop disarms the timer; a callback not yet started will not run
	Stop()

	//IsArmed returns true while the timer keeps firing
	IsArmed() bool
}

// NewPeriodicalTimer creates an idle periodical timer bound to the loop.
func NewPeriodicalTimer(l Loop) PeriodicalTimer {
	return &ptm{l: l}
}

type ptm struct {
	l     Loop
	armed atomic.Bool
	t     atomic.Pointer[time.Timer]
}

func (o *ptm) Start(d time.Duration, callback Task) error {
	if d < time.Millisecond {
		return ErrorTimerDuration.Error(nil)
	}

	if callback == nil {
		return ErrorTimerDuration.Error(nil)
	}

	if !o.armed.CompareAndSwap(false, true) {
		return ErrorTimerRunning.Error(nil)
	}

	o.arm(d, callback)

	return nil
}

func (o *ptm) arm(d time.Duration, callback Task) {
	o.t.Store(time.AfterFunc(d, func() {
		_ = o.l.Post(func() {
			if !o.armed.Load() {
				return
			}

			callback()

			if o.armed.Load() {
				o.arm(d, callback)
			}
		})
	}))
}

func (o *ptm) Stop() {
	if o.armed.CompareAndSwap(true, false) {
		if t := o.t.Load(); t != nil {
			t.Stop()
		}
	}
}

func (o *ptm) IsArmed() bool {
	return o.armed.Load()
}
