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

import liberr "github.com/OpenBand/barbacoa-server-lib/errors"

const (
	// ErrorNotMainThread reports an Init call outside the process initial goroutine.
	ErrorNotMainThread liberr.CodeError = iota + liberr.MinPkgApp
	// ErrorAlreadyInit reports a second initialization of the supervisor.
	ErrorAlreadyInit
	// ErrorNotInit reports usage of the supervisor before Init.
	ErrorNotInit
	// ErrorAlreadyRunning reports a second Run while the supervisor runs.
	ErrorAlreadyRunning
	// ErrorThreadsAlive reports an Init call after other threads were created.
	ErrorThreadsAlive
	// ErrorCallbackRunning reports a callback registration while running.
	ErrorCallbackRunning
	// ErrorConfigInvalid reports an invalid supervisor configuration.
	ErrorConfigInvalid
)

func init() {
	liberr.RegisterIdFctMessage(ErrorNotMainThread, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorNotMainThread:
		return "application must be initiated from the process main goroutine"
	case ErrorAlreadyInit:
		return "application is already initialized"
	case ErrorNotInit:
		return "application is not initialized"
	case ErrorAlreadyRunning:
		return "application is already running"
	case ErrorThreadsAlive:
		return "application must be initiated before creation of any other thread to make signal handling safe"
	case ErrorCallbackRunning:
		return "callbacks must be registered before running"
	case ErrorConfigInvalid:
		return "invalid application configuration"
	}

	return liberr.NullMessage
}
