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
	"bytes"

	libunt "github.com/OpenBand/barbacoa-server-lib/network/unit"
)

type delimited struct {
	dl []byte
	u  libunt.Unit
}

// SetDelimiter changes the delimiter bytes.
func (o *delimited) SetDelimiter(delim []byte) {
	o.dl = make([]byte, len(delim))
	copy(o.dl, delim)
}

func (o *delimited) Feed(data []byte) (rest []byte, err error) {
	if len(o.dl) < 1 {
		return data, ErrorDelimiterEmpty.Error(nil)
	}

	i := bytes.Index(data, o.dl)
	if i < 0 {
		return data, nil
	}

	wire := data[:i+len(o.dl)]
	o.u = libunt.NewStringWire(data[:i], wire)

	return data[i+len(o.dl):], nil
}

func (o *delimited) UnitReady() bool {
	return o.u != nil
}

func (o *delimited) Unit() libunt.Unit {
	u := o.u
	o.u = nil
	return u
}

func (o *delimited) Reset() {
	o.u = nil
}

func (o *delimited) Create(input []byte) libunt.Unit {
	wire := make([]byte, 0, len(input)+len(o.dl))
	wire = append(wire, input...)
	wire = append(wire, o.dl...)

	return libunt.NewStringWire(input, wire)
}

func (o *delimited) Clone() UnitBuilder {
	d := make([]byte, len(o.dl))
	copy(d, o.dl)
	return &delimited{dl: d}
}
