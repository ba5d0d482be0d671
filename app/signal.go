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
	"syscall"

	"golang.org/x/sys/unix"
)

// ControlSignal enumerates the user signals of the control class.
type ControlSignal uint8

const (
	USR1 ControlSignal = iota + 1
	USR2
)

func (c ControlSignal) String() string {
	switch c {
	case USR1:
		return "USR1"
	case USR2:
		return "USR2"
	}

	return "unknown"
}

// EventKind discriminates the last-signal slot variants.
type EventKind uint8

const (
	EventEmpty EventKind = iota
	EventExit
	EventControl
	EventFail
)

// Event is the tagged record of the last delivered signal.
type Event struct {
	Kind     EventKind
	Signo    syscall.Signal
	Control  ControlSignal
	DumpPath string
}

// exitSignals is the exit class: the supervisor stops the main loop and
// leaves with 128 plus the signal number.
func exitSignals() []os.Signal {
	return []os.Signal{
		unix.SIGTERM,
		unix.SIGINT,
		unix.SIGHUP,
		unix.SIGQUIT,
	}
}

// controlSignals is the control class: forwarded to the user control
// callback on the main loop.
func controlSignals() []os.Signal {
	return []os.Signal{
		unix.SIGUSR1,
		unix.SIGUSR2,
	}
}

// failSignals is the catchable part of the fail class. The synchronous
// faults (SEGV, FPE, ILL, BUS) belong to the runtime and cannot be
// waited on; they are still classified by isFailSignal for the fail
// callback payload.
func failSignals() []os.Signal {
	return []os.Signal{
		unix.SIGABRT,
		unix.SIGPIPE,
		unix.SIGSYS,
		unix.SIGXCPU,
		unix.SIGXFSZ,
	}
}

func isFailSignal(sig syscall.Signal) bool {
	switch sig {
	case unix.SIGSEGV, unix.SIGFPE, unix.SIGABRT, unix.SIGILL, unix.SIGBUS,
		unix.SIGSYS, unix.SIGPIPE, unix.SIGXCPU, unix.SIGXFSZ:
		return true
	}

	return false
}

func isControlSignal(sig syscall.Signal) (ControlSignal, bool) {
	switch sig {
	case unix.SIGUSR1:
		return USR1, true
	case unix.SIGUSR2:
		return USR2, true
	}

	return 0, false
}
