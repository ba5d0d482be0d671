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
	"sync"
	"time"
)

// waitGuard is the shared synchronization guard of the bridge: the
// completion publishes its result only while the caller still waits.
// After a timeout the caller flips waiting under the lock, so a late
// completion detects the abandoned wait and discards its result.
type waitGuard struct {
	mu      sync.Mutex
	waiting bool
}

// WaitAsyncCall schedules the callable through caller and blocks until
// it completed or the timeout elapsed; a zero or negative timeout waits
// without limit. It returns true when the callable completed in time.
func WaitAsyncCall(caller func(Task) error, callable Task, timeout time.Duration) bool {
	if callable == nil {
		return false
	}

	var (
		g    = &waitGuard{waiting: true}
		done = make(chan struct{}, 1)
	)

	err := caller(func() {
		callable()

		g.mu.Lock()
		if g.waiting {
			done <- struct{}{}
		}
		g.mu.Unlock()
	})

	if err != nil {
		return false
	}

	if timeout <= 0 {
		<-done
		return true
	}

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-done:
		return true
	case <-t.C:
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// the completion may have published between the timeout and the lock
	select {
	case <-done:
		return true
	default:
	}

	g.waiting = false

	return false
}

// WaitResult posts the callable on the loop and blocks until its result
// is available or the timeout elapsed. On timeout the initial value is
// returned and a later completion is discarded without touching the
// caller state; an error returned by the callable is forwarded.
func WaitResult[T any](l Loop, initial T, callable func() (T, error), timeout time.Duration) (T, error) {
	if callable == nil {
		return initial, nil
	}

	if l.IsThisLoop() {
		return initial, ErrorWaitInLoop.Error(nil)
	}

	var (
		res = initial
		err error
	)

	ok := WaitAsyncCall(l.Post, func() {
		res, err = callable()
	}, timeout)

	if !ok {
		return initial, nil
	}

	return res, err
}

func (o *lop) Wait(callable Task, timeout time.Duration) bool {
	if o.IsThisLoop() {
		o.logger().CheckError("wait bridge misuse", ErrorWaitInLoop.Error(nil))
		return false
	}

	return WaitAsyncCall(o.Post, callable, timeout)
}
