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

type raw struct {
	u libunt.Unit
}

func (o *raw) Feed(data []byte) (rest []byte, err error) {
	if len(data) < 1 {
		return data, nil
	}

	o.u = libunt.NewString(data)

	return nil, nil
}

func (o *raw) UnitReady() bool {
	return o.u != nil
}

func (o *raw) Unit() libunt.Unit {
	u := o.u
	o.u = nil
	return u
}

func (o *raw) Reset() {
	o.u = nil
}

func (o *raw) Create(input []byte) libunt.Unit {
	return libunt.NewString(input)
}

func (o *raw) Clone() UnitBuilder {
	return &raw{}
}
