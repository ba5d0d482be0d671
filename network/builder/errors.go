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

import liberr "github.com/OpenBand/barbacoa-server-lib/errors"

const (
	// ErrorPayloadOverflow reports a length prefix above the configured maximum.
	ErrorPayloadOverflow liberr.CodeError = iota + liberr.MinPkgBuilder
	// ErrorSizeInvalid reports a non positive size for the fixed string builder.
	ErrorSizeInvalid
	// ErrorDelimiterEmpty reports a delimited builder without delimiter.
	ErrorDelimiterEmpty
	// ErrorBuilderMissing reports a manager used without any builder attached.
	ErrorBuilderMissing
	// ErrorUnitMissing reports a unit retrieval while none is available.
	ErrorUnitMissing
)

func init() {
	liberr.RegisterIdFctMessage(ErrorPayloadOverflow, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorPayloadOverflow:
		return "message length prefix exceeds the allowed maximum payload"
	case ErrorSizeInvalid:
		return "fixed string size must be strictly positive"
	case ErrorDelimiterEmpty:
		return "delimiter cannot be empty"
	case ErrorBuilderMissing:
		return "no unit builder attached"
	case ErrorUnitMissing:
		return "no available unit"
	}

	return liberr.NullMessage
}
