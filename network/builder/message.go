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
	"encoding/binary"

	libunt "github.com/OpenBand/barbacoa-server-lib/network/unit"
)

const messageHeaderSize = 4

// DefaultMaxPayload bounds length-prefixed messages when no explicit
// maximum is configured.
const DefaultMaxPayload uint32 = 16 * 1024 * 1024

type message struct {
	max uint32
	u   libunt.Unit
}

func (o *message) maxPayload() uint32 {
	if o.max < 1 {
		return DefaultMaxPayload
	}

	return o.max
}

func (o *message) Feed(data []byte) (rest []byte, err error) {
	if len(data) < messageHeaderSize {
		return data, nil
	}

	ln := binary.BigEndian.Uint32(data[:messageHeaderSize])

	// the header alone is enough to reject an overlength message
	if ln > o.maxPayload() {
		return data, ErrorPayloadOverflow.Error(nil)
	}

	if uint64(len(data)) < uint64(messageHeaderSize)+uint64(ln) {
		return data, nil
	}

	wire := data[:messageHeaderSize+int(ln)]
	o.u = libunt.NewStringWire(wire[messageHeaderSize:], wire)

	return data[messageHeaderSize+int(ln):], nil
}

func (o *message) UnitReady() bool {
	return o.u != nil
}

func (o *message) Unit() libunt.Unit {
	u := o.u
	o.u = nil
	return u
}

func (o *message) Reset() {
	o.u = nil
}

func (o *message) Create(input []byte) libunt.Unit {
	wire := make([]byte, messageHeaderSize+len(input))
	binary.BigEndian.PutUint32(wire, uint32(len(input)))
	copy(wire[messageHeaderSize:], input)

	return libunt.NewStringWire(input, wire)
}

func (o *message) Clone() UnitBuilder {
	return &message{max: o.max}
}
