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

package errors

import (
	"math"
)

// Message is a function type that generates an error message for a code.
// Packages register one Message function covering their code range.
type Message func(code CodeError) (message string)

// CodeError represents a numeric error code scoped per package.
// Code ranges are allocated in modules.go.
type CodeError uint16

var idMsgFct = make(map[CodeError]Message)

// ParseCodeError returns a CodeError based on the input int64 value,
// clamped to the uint16 range.
func ParseCodeError(i int64) CodeError {
	if i < 0 {
		return UnknownError
	} else if i >= int64(math.MaxUint16) {
		return math.MaxUint16
	} else {
		return CodeError(i)
	}
}

func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

func (c CodeError) Int() int {
	return int(c)
}

// GetMessage resolves the registered message for the code.
// An unregistered code resolves to the unknown message.
func (c CodeError) GetMessage() string {
	if f, ok := idMsgFct[c]; ok && f != nil {
		if msg := f(c); msg != NullMessage {
			return msg
		}
	}

	return UnknownMessage
}

// Error builds a new Error value for the code with an optional parent.
func (c CodeError) Error(parent ...error) Error {
	return newError(c, c.GetMessage(), 1, parent...)
}

// ErrorParent builds a new Error value for the code chaining all the
// given parents.
func (c CodeError) ErrorParent(parent ...error) Error {
	return c.Error(parent...)
}

// IfError returns an Error for the code if at least one given parent
// error is non nil, or nil otherwise.
func (c CodeError) IfError(parent ...error) Error {
	var p = make([]error, 0, len(parent))

	for _, e := range parent {
		if e != nil {
			p = append(p, e)
		}
	}

	if len(p) < 1 {
		return nil
	}

	return newError(c, c.GetMessage(), 1, p...)
}

// RegisterIdFctMessage registers the message function for all codes
// from the given minimal code of a package range.
// Calling it twice for the same range overrides the previous function.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct

	for i := minCode + 1; i < minCode+rangePkgSize; i++ {
		if msg := fct(i); msg != NullMessage {
			idMsgFct[i] = fct
		}
	}
}

// ExistInMapMessage returns true if the given code has a registered
// message function.
func ExistInMapMessage(code CodeError) bool {
	_, ok := idMsgFct[code]
	return ok
}
