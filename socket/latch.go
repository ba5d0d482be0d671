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

import (
	"sync"
)

// ScopeRunner is the per-connection scope latch: every asynchronous
// completion takes a continue lock before touching connection state, and
// Stop waits for in-flight holders then refuses any further lock, so
// completions landing after teardown no-op instead of dereferencing
// freed state.
type ScopeRunner struct {
	mu     sync.RWMutex
	closed bool
}

// ContinueLock returns a release function while the scope is alive, or
// ok false once Stop ran. The caller must invoke release when done.
func (o *ScopeRunner) ContinueLock() (release func(), ok bool) {
	o.mu.RLock()

	if o.closed {
		o.mu.RUnlock()
		return nil, false
	}

	return o.mu.RUnlock, true
}

// Stop waits for in-flight holders and closes the scope. It is
// idempotent.
func (o *ScopeRunner) Stop() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
}

// IsStopped returns true once Stop ran.
func (o *ScopeRunner) IsStopped() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.closed
}
