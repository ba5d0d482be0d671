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

package socket

import liberr "github.com/OpenBand/barbacoa-server-lib/errors"

const (
	// ErrorNotConnected reports an I/O attempt on a closed connection.
	ErrorNotConnected liberr.CodeError = iota + liberr.MinPkgSocket
	// ErrorReadPending reports a second read while one is outstanding.
	ErrorReadPending
	// ErrorAlreadyRunning reports a Start on a running server.
	ErrorAlreadyRunning
	// ErrorNotRunning reports an operation needing a running server.
	ErrorNotRunning
	// ErrorStopInWorker reports a Stop issued from a worker of the own pool.
	ErrorStopInWorker
	// ErrorListenFailed reports a bind or listen failure.
	ErrorListenFailed
	// ErrorDialFailed reports a connect failure.
	ErrorDialFailed
	// ErrorTimeout reports an I/O deadline expiration.
	ErrorTimeout
)

func init() {
	liberr.RegisterIdFctMessage(ErrorNotConnected, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorNotConnected:
		return "connection is not connected"
	case ErrorReadPending:
		return "a read is already outstanding on this connection"
	case ErrorAlreadyRunning:
		return "transport is already running"
	case ErrorNotRunning:
		return "transport is not running"
	case ErrorStopInWorker:
		return "cannot initiate transport stop from one of its own workers, this is the way to deadlock"
	case ErrorListenFailed:
		return "cannot bind or listen on the configured endpoint"
	case ErrorDialFailed:
		return "cannot connect to the configured endpoint"
	case ErrorTimeout:
		return "i/o deadline expired"
	}

	return liberr.NullMessage
}
