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

const integerWireSize = 4

type integer struct {
	u libunt.Unit
}

func (o *integer) Feed(data []byte) (rest []byte, err error) {
	if len(data) < integerWireSize {
		return data, nil
	}

	wire := data[:integerWireSize]
	o.u = libunt.NewInteger(binary.BigEndian.Uint32(wire), wire)

	return data[integerWireSize:], nil
}

func (o *integer) UnitReady() bool {
	return o.u != nil
}

func (o *integer) Unit() libunt.Unit {
	u := o.u
	o.u = nil
	return u
}

func (o *integer) Reset() {
	o.u = nil
}

func (o *integer) Create(input []byte) libunt.Unit {
	var v uint32

	if len(input) >= integerWireSize {
		v = binary.BigEndian.Uint32(input)
	} else {
		buf := make([]byte, integerWireSize)
		copy(buf[integerWireSize-len(input):], input)
		v = binary.BigEndian.Uint32(buf)
	}

	return CreateInteger(v)
}

func (o *integer) Clone() UnitBuilder {
	return &integer{}
}

// CreateInteger builds an integer unit carrying the given value with its
// big-endian wire form.
func CreateInteger(value uint32) libunt.Unit {
	wire := make([]byte, integerWireSize)
	binary.BigEndian.PutUint32(wire, value)
	return libunt.NewInteger(value, wire)
}
