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
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
)

type lop struct {
	mu  sync.Mutex
	cnd *sync.Cond
	q   []Task
	run bool
	stp bool

	n    int
	main bool

	sm sync.Mutex
	sq []Task
	sa bool

	qs  atomic.Int64
	wg  sync.WaitGroup
	wid libatm.Map[uint64, bool]
	nm  libatm.Value[string]
	log libatm.Value[liblog.FuncLog]
}

func newLoop(workers int, main bool) *lop {
	l := &lop{
		n:    workers,
		main: main,
		wid:  libatm.NewMap[uint64, bool](),
		nm:   libatm.NewValue[string](),
		log:  libatm.NewValue[liblog.FuncLog](),
	}

	l.cnd = sync.NewCond(&l.mu)

	return l
}

func (o *lop) logger() liblog.Logger {
	if f := o.log.Load(); f != nil {
		if l := f(); l != nil {
			return l
		}
	}

	return liblog.GetDefault()
}

func (o *lop) SetLogger(fct liblog.FuncLog) {
	o.log.Store(fct)
}

func (o *lop) enqueue(t Task) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stp {
		return ErrorPostStopped.Error(nil)
	}

	o.q = append(o.q, t)
	o.cnd.Signal()

	return nil
}

func (o *lop) PostUnordered(t Task) error {
	if t == nil {
		return nil
	}

	o.qs.Add(1)

	err := o.enqueue(func() {
		defer o.qs.Add(-1)
		t()
	})

	if err != nil {
		o.qs.Add(-1)
	}

	return err
}

func (o *lop) Post(t Task) error {
	if t == nil {
		return nil
	}

	o.sm.Lock()

	o.sq = append(o.sq, t)
	idx := len(o.sq) - 1

	if o.sa {
		o.sm.Unlock()
		o.qs.Add(1)
		return nil
	}

	o.sa = true
	o.sm.Unlock()
	o.qs.Add(1)

	if err := o.enqueue(o.drainStrand); err != nil {
		// only this call's task is withdrawn: no drainer ran yet, so the
		// entry is still at its appended index, and concurrent posts that
		// were acknowledged stay queued for the next start
		o.sm.Lock()
		if idx < len(o.sq) {
			o.sq = append(o.sq[:idx], o.sq[idx+1:]...)
		}
		o.sa = false
		o.sm.Unlock()
		o.qs.Add(-1)
		return err
	}

	return nil
}

// rescheduleStrand submits a drainer for strand tasks left over from a
// stop that interrupted their scheduling, so acknowledged posts run on
// the next start.
func (o *lop) rescheduleStrand() {
	o.sm.Lock()

	if o.sa || len(o.sq) < 1 {
		o.sm.Unlock()
		return
	}

	o.sa = true
	o.sm.Unlock()

	if o.enqueue(o.drainStrand) != nil {
		o.sm.Lock()
		o.sa = false
		o.sm.Unlock()
	}
}

// drainStrand runs queued strand tasks one after the other on a single
// worker, so strand submissions never run concurrently.
func (o *lop) drainStrand() {
	for {
		o.sm.Lock()

		if len(o.sq) < 1 {
			o.sa = false
			o.sm.Unlock()
			return
		}

		t := o.sq[0]
		o.sq = o.sq[1:]

		o.sm.Unlock()

		o.invoke(t)
		o.qs.Add(-1)
	}
}

func (o *lop) invoke(t Task) {
	defer func() {
		if r := recover(); r != nil {
			o.logger().Error("task panicked on loop worker", r)
		}
	}()

	t()
}

func (o *lop) Start(onStart Task, onStop Task) error {
	o.mu.Lock()

	if o.run {
		o.mu.Unlock()
		return ErrorAlreadyRunning.Error(nil)
	}

	o.run = true
	o.stp = false

	o.mu.Unlock()

	o.rescheduleStrand()

	if onStart != nil {
		_ = o.Post(onStart)
	}

	if o.main {
		// the main loop borrows the calling goroutine as its only worker
		o.wg.Add(1)
		o.worker()
		o.wg.Wait()
		o.finish(onStop)
		return nil
	}

	o.wg.Add(o.n)

	for i := 0; i < o.n; i++ {
		go o.worker()
	}

	go func() {
		o.wg.Wait()
		o.finish(onStop)
	}()

	return nil
}

func (o *lop) finish(onStop Task) {
	o.mu.Lock()
	o.run = false
	o.stp = false
	o.cnd.Broadcast()
	o.mu.Unlock()

	if onStop != nil {
		o.invoke(onStop)
	}
}

func (o *lop) worker() {
	defer o.wg.Done()

	id := goID()
	o.wid.Store(id, true)
	defer o.wid.Delete(id)

	if n := o.nm.Load(); n != "" {
		runtime.LockOSThread()
		applyThreadName(n)
	}

	for {
		o.mu.Lock()

		for len(o.q) < 1 && !o.stp {
			o.cnd.Wait()
		}

		if len(o.q) < 1 {
			// stop requested and queue drained
			o.mu.Unlock()
			return
		}

		t := o.q[0]
		o.q = o.q[1:]

		o.mu.Unlock()

		o.invoke(t)
	}
}

func (o *lop) Stop() error {
	o.mu.Lock()

	if !o.run {
		o.mu.Unlock()
		return nil
	}

	o.mu.Unlock()

	if o.IsThisLoop() {
		return ErrorStopInLoop.Error(nil)
	}

	o.mu.Lock()

	if !o.run || o.stp {
		o.mu.Unlock()
		return nil
	}

	o.stp = true
	o.cnd.Broadcast()
	o.mu.Unlock()

	o.wg.Wait()

	o.mu.Lock()
	for o.run {
		o.cnd.Wait()
	}
	o.mu.Unlock()

	return nil
}

func (o *lop) IsRunning() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.run
}

func (o *lop) IsThisLoop() bool {
	_, ok := o.wid.Load(goID())
	return ok
}

func (o *lop) QueueSize() uint64 {
	if v := o.qs.Load(); v > 0 {
		return uint64(v)
	}

	return 0
}

func (o *lop) ChangeThreadName(name string) {
	o.nm.Store(name)

	if o.IsRunning() {
		// best effort rename of the worker picking this task up
		_ = o.PostUnordered(func() {
			runtime.LockOSThread()
			applyThreadName(name)
		})
	}
}

func (o *lop) StartTimer(d time.Duration, callback Task) (Timer, error) {
	if d < time.Millisecond {
		return nil, ErrorTimerDuration.Error(nil)
	}

	if callback == nil {
		return nil, ErrorTimerDuration.Error(nil)
	}

	t := &tmr{}
	t.armed.Store(true)

	t.t = time.AfterFunc(d, func() {
		_ = o.Post(func() {
			if t.armed.CompareAndSwap(true, false) {
				callback()
			}
		})
	})

	return t, nil
}
