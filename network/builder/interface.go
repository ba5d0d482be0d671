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

// Package builder implements the framing state machines turning a byte
// stream into a sequence of units, and the per-connection manager
// driving one builder over the received stream.
//
// A builder claims bytes from the stream only when they complete a unit:
// Feed returns the unclaimed suffix, so no byte is ever lost between
// calls. The built-in framings are raw (one buffer, one unit), integer
// (big-endian u32), fixed length string, length-prefixed message
// (big-endian u32 header) and delimited stream.
package builder

import (
	libunt "github.com/OpenBand/barbacoa-server-lib/network/unit"
)

// UnitBuilder is the framing strategy contract. Implementations are
// stream builders: fed partial bytes, they claim complete units and
// leave the rest.
type UnitBuilder interface {
	//Feed offers data to the builder; the builder claims a prefix
	// completing at most one unit and returns the unclaimed rest.
	// A framing violation is returned as a coded error.
	Feed(data []byte) (rest []byte, err error)

	//UnitReady returns true when a complete unit awaits retrieval
	UnitReady() bool

	//Unit returns the built unit and clears the ready state
	Unit() libunt.Unit

	//Reset returns the builder to its initial state
	Reset()

	//Create constructs the outgoing form of a payload for this framing
	Create(input []byte) libunt.Unit

	//Clone returns a fresh builder of the same kind and configuration,
	// without any accumulated state
	Clone() UnitBuilder
}

// NewRaw creates the pass-through framing: any non empty buffer is one unit.
func NewRaw() UnitBuilder {
	return &raw{}
}

// NewInteger creates the fixed width integer framing: units are
// big-endian unsigned 32 bit values.
func NewInteger() UnitBuilder {
	return &integer{}
}

// NewFixedString creates the fixed length string framing: every unit is
// exactly size bytes. A non positive size is rejected at Feed/Create time.
func NewFixedString(size int) UnitBuilder {
	return &fixed{sz: size}
}

// NewMessage creates the length-prefixed framing: a big-endian u32
// length header followed by the payload. A header above maxPayload is a
// framing violation.
func NewMessage(maxPayload uint32) UnitBuilder {
	return &message{max: maxPayload}
}

// NewDelimited creates the delimited framing: units are payloads
// separated by the given delimiter bytes.
func NewDelimited(delim []byte) UnitBuilder {
	d := make([]byte, len(delim))
	copy(d, delim)
	return &delimited{dl: d}
}
