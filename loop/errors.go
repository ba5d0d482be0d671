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

import liberr "github.com/OpenBand/barbacoa-server-lib/errors"

const (
	// ErrorWorkersInvalid reports a non positive worker count.
	ErrorWorkersInvalid liberr.CodeError = iota + liberr.MinPkgLoop
	// ErrorAlreadyRunning reports a Start call on a running loop.
	ErrorAlreadyRunning
	// ErrorNotRunning reports an operation needing a running loop.
	ErrorNotRunning
	// ErrorStopInLoop reports a Stop call issued from a worker of the same loop.
	ErrorStopInLoop
	// ErrorWaitInLoop reports a Wait call issued from a worker of the target loop.
	ErrorWaitInLoop
	// ErrorTimerDuration reports a timer duration under the accuracy floor.
	ErrorTimerDuration
	// ErrorTimerRunning reports a Start call on an armed timer.
	ErrorTimerRunning
	// ErrorMainRunning reports a second main loop started while one runs.
	ErrorMainRunning
	// ErrorPostStopped reports a task submitted after the loop stopped.
	ErrorPostStopped
)

func init() {
	liberr.RegisterIdFctMessage(ErrorWorkersInvalid, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorWorkersInvalid:
		return "worker count must be strictly positive"
	case ErrorAlreadyRunning:
		return "loop is already running"
	case ErrorNotRunning:
		return "loop is not running"
	case ErrorStopInLoop:
		return "cannot initiate loop stop from one of its own workers, this is the way to deadlock"
	case ErrorWaitInLoop:
		return "cannot wait on a loop from one of its own workers, this is the way to deadlock"
	case ErrorTimerDuration:
		return "1 millisecond is the minimum timer accuracy"
	case ErrorTimerRunning:
		return "timer is already armed"
	case ErrorMainRunning:
		return "another main loop is already running in this process"
	case ErrorPostStopped:
		return "loop has been stopped, task rejected"
	}

	return liberr.NullMessage
}
