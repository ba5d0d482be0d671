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

// Package loop provides the cooperative task scheduler every component
// of this module runs on: a single or pooled worker event loop with
// strand ordering, one-shot and periodical timers, and the bridge
// turning an asynchronous task into a synchronous, optionally timed,
// call from any other goroutine.
//
// Tasks submitted with Post are serialized in submission order even on
// a pooled loop; PostUnordered submissions may run concurrently across
// workers. Tasks submitted before Start are held until the workers run.
package loop

import (
	"time"

	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
)

// Task is a unit of work executed on a worker of a loop.
type Task func()

// Loop is a cooperative task scheduler instance.
type Loop interface {
	//Post enqueues a task on the loop strand: tasks posted through it
	// never run concurrently with each other and keep submission order.
	// Tasks posted while the loop is stopping are rejected; tasks posted
	// once it has stopped are held until the next Start.
	Post(t Task) error

	//PostUnordered enqueues a task that may run concurrently with any
	// other task on a pooled loop.
	PostUnordered(t Task) error

	//Start launches the workers. onStart, when not nil, is posted on the
	// strand as Start runs: it runs on a worker after the strand tasks held
	// from before Start and before any strand task posted later; onStop is
	// invoked after all workers drained and exited.
	Start(onStart Task, onStop Task) error

	//Stop signals the workers, drains the queued tasks and joins. It is
	// idempotent and must not be called from one of the loop's own
	// workers.
	Stop() error

	//IsRunning returns true while workers drain the queue
	IsRunning() bool

	//IsThisLoop returns true only from inside a worker of this loop
	IsThisLoop() bool

	//QueueSize returns the count of submitted but not yet completed tasks
	QueueSize() uint64

	//ChangeThreadName sets the OS-level name applied to worker threads
	ChangeThreadName(name string)

	//StartTimer arms a one-shot timer firing the callback on this loop.
	// The accuracy floor is one millisecond; shorter durations are
	// rejected. The returned timer can be stopped before it fires.
	StartTimer(d time.Duration, callback Task) (Timer, error)

	//Wait posts the callable on the loop and blocks the caller until it
	// completed or the timeout elapsed; a zero or negative timeout waits
	// without limit. It returns true if the callable completed in time.
	// The caller must not be a worker of this loop.
	Wait(callable Task, timeout time.Duration) bool

	//SetLogger registers the logger accessor used by this loop
	SetLogger(fct liblog.FuncLog)
}

// Timer is the handle of an armed timer.
type Timer interface {
	//Stop disarms the timer: once Stop returned before the callback
	// started, the callback will not run.
	Stop()

	//IsArmed returns true while the timer may still fire
	IsArmed() bool
}

// New creates an inert loop with the given worker count: one worker for
// a single-threaded loop, more for a pooled loop.
func New(workers int) (Loop, error) {
	if workers < 1 {
		return nil, ErrorWorkersInvalid.Error(nil)
	}

	return newLoop(workers, false), nil
}
