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
	"runtime"
	"strconv"
	"syscall"
	"time"

	liberr "github.com/OpenBand/barbacoa-server-lib/errors"
	"github.com/shirou/gopsutil/process"
	"golang.org/x/sys/unix"
)

const coreFileName = "core"

// saveRawDump writes the stacks of every goroutine to the given path.
// It returns the number of bytes written, zero meaning no dump was saved.
func saveRawDump(path string, sig syscall.Signal) int {
	if path == "" {
		return 0
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0
	}

	defer func() {
		_ = f.Close()
	}()

	var total int

	if n, _ := f.WriteString("signal " + unix.SignalName(sig) + " received at " +
		time.Now().UTC().Format(time.RFC3339) + "\n" + processInfo() + "\n"); n > 0 {
		total += n
	}

	buf := make([]byte, 1<<20)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, len(buf)*2)
	}

	if n, _ := f.Write(buf); n > 0 {
		total += n
	}

	return total
}

// numOSThreads returns the OS thread count of this process, zero when
// it cannot be read.
func numOSThreads() int {
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if n, er := p.NumThreads(); er == nil {
			return int(n)
		}
	}

	return 0
}

// checkNoOtherThreads verifies no thread beyond the runtime's own was
// created yet. The Go runtime owns a handful of threads from the first
// instruction, so the bound is the scheduler's processor count plus the
// service threads it spawns; anything above that, or any live goroutine
// beyond the caller, means user concurrency already started.
func checkNoOtherThreads() error {
	if runtime.NumGoroutine() > 1 {
		return ErrorThreadsAlive.Error(liberr.New(processInfo()))
	}

	if n := numOSThreads(); n > runtime.GOMAXPROCS(0)+runtimeServiceThreads {
		return ErrorThreadsAlive.Error(liberr.New(processInfo()))
	}

	return nil
}

// runtimeServiceThreads bounds the threads the runtime itself may hold
// before main runs (m0, sysmon, template thread, signal thread).
const runtimeServiceThreads = 4

// processInfo renders a short process status line for the dump header.
func processInfo() string {
	res := "pid " + strconv.Itoa(os.Getpid())

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if n, er := p.NumThreads(); er == nil {
			res += ", threads " + strconv.FormatInt(int64(n), 10)
		}
		if m, er := p.MemoryInfo(); er == nil && m != nil {
			res += ", rss " + strconv.FormatUint(m.RSS, 10)
		}
	}

	return res + ", goroutines " + strconv.Itoa(runtime.NumGoroutine())
}

// enableCorefile raises the core size limit to unlimited and archives a
// pre-existing core file under a timestamped name so a fresh dump is
// not overwritten.
func enableCorefile() {
	lim := &unix.Rlimit{
		Cur: unix.RLIM_INFINITY,
		Max: unix.RLIM_INFINITY,
	}

	_ = unix.Setrlimit(unix.RLIMIT_CORE, lim)

	if fi, err := os.Stat(coreFileName); err == nil && !fi.IsDir() {
		_ = os.Rename(coreFileName, coreFileName+"."+time.Now().UTC().Format("2006-01-02T15-04-05"))
	}
}

// lockIO redirects the standard streams to the null device.
func lockIO() {
	if f, err := os.OpenFile(os.DevNull, os.O_RDWR, 0); err == nil {
		_ = dupFd(int(f.Fd()), int(os.Stdin.Fd()))
		_ = dupFd(int(f.Fd()), int(os.Stdout.Fd()))
		_ = dupFd(int(f.Fd()), int(os.Stderr.Fd()))
	}
}

// executableName returns the base name of the running binary, used as
// the main loop thread name.
func executableName() string {
	if p, err := os.Executable(); err == nil && p != "" {
		for i := len(p) - 1; i >= 0; i-- {
			if p[i] == '/' {
				return p[i+1:]
			}
		}
		return p
	}

	return "MAIN"
}
