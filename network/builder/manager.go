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

package builder

import (
	libunt "github.com/OpenBand/barbacoa-server-lib/network/unit"
)

// Manager is the per-connection driver owning one unit builder, the
// residual byte buffer and the ready-queue of fully parsed units.
//
// After any Feed call, the residual plus the wire forms of every queued
// unit always reconstruct exactly the bytes fed so far.
//
// A Manager is not safe for concurrent use: the connection layer
// serializes all receive handling per connection.
type Manager interface {
	//SetBuilder attaches the builder driving the stream
	SetBuilder(b UnitBuilder)
	//Builder returns the attached builder
	Builder() UnitBuilder

	//Feed appends data to the residual and extracts every completed
	// unit into the ready-queue. A framing violation is returned as a
	// coded error and leaves the residual untouched.
	Feed(data []byte) error

	//ReceiveAvailable returns true while at least one unit is queued
	ReceiveAvailable() bool
	//GetFront returns the first queued unit without removing it
	GetFront() (libunt.Unit, error)
	//PopFront removes and returns the first queued unit
	PopFront() (libunt.Unit, error)

	//Residual returns a copy of the unconsumed bytes
	Residual() []byte

	//Reset drops the residual, the queue and the builder state
	Reset()
}

// NewManager creates a Manager driving the given builder.
func NewManager(b UnitBuilder) Manager {
	return &mgr{
		b: b,
	}
}

type mgr struct {
	b UnitBuilder
	r []byte
	q []libunt.Unit
}

func (o *mgr) SetBuilder(b UnitBuilder) {
	o.b = b
}

func (o *mgr) Builder() UnitBuilder {
	return o.b
}

func (o *mgr) Feed(data []byte) error {
	if o.b == nil {
		return ErrorBuilderMissing.Error(nil)
	}

	o.r = append(o.r, data...)

	for len(o.r) > 0 {
		rest, err := o.b.Feed(o.r)
		if err != nil {
			return err
		}

		if !o.b.UnitReady() {
			break
		}

		o.q = append(o.q, o.b.Unit())
		o.b.Reset()

		o.r = o.r[len(o.r)-len(rest):]
	}

	return nil
}

func (o *mgr) ReceiveAvailable() bool {
	return len(o.q) > 0
}

func (o *mgr) GetFront() (libunt.Unit, error) {
	if len(o.q) < 1 {
		return nil, ErrorUnitMissing.Error(nil)
	}

	return o.q[0], nil
}

func (o *mgr) PopFront() (libunt.Unit, error) {
	if len(o.q) < 1 {
		return nil, ErrorUnitMissing.Error(nil)
	}

	u := o.q[0]
	o.q = o.q[1:]

	return u, nil
}

func (o *mgr) Residual() []byte {
	res := make([]byte, len(o.r))
	copy(res, o.r)
	return res
}

func (o *mgr) Reset() {
	o.r = nil
	o.q = nil

	if o.b != nil {
		o.b.Reset()
	}
}
