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

// Package unit defines the application message value produced and
// consumed by the framing builders: an immutable unit that is either a
// byte string, an integer, a null, a composite of child units, or an
// error marker.
//
// A unit carries two projections: NetworkString, the exact bytes to
// ship on the wire for the framing that created it, and
// PrintableString, a loggable debug form.
package unit

// Kind discriminates the unit variants.
type Kind uint8

const (
	KindNil Kind = iota
	KindString
	KindInteger
	KindComposite
	KindError
)

// Unit is one application-layer message, as seen after framing.
// Units are immutable once created.
type Unit interface {
	Kind() Kind

	IsNil() bool
	IsString() bool
	IsInteger() bool
	IsComposite() bool
	IsError() bool

	//Bytes returns the payload for string units, nil otherwise
	Bytes() []byte
	//String returns the payload as string for string units
	String() string
	//Integer returns the value for integer units, 0 otherwise
	Integer() uint32
	//Parts returns the children for composite units, nil otherwise
	Parts() []Unit
	//Err returns the message for error-marker units
	Err() string

	//NetworkString returns the exact bytes to ship for the framing that
	// created the unit; re-parsing them with the paired builder yields an
	// equal unit
	NetworkString() []byte
	//PrintableString returns a loggable debug form of the unit
	PrintableString() string

	//Equal compares the unit payloads, ignoring the wire form
	Equal(other Unit) bool
}

// NewString creates a string unit; the wire form defaults to the payload.
func NewString(payload []byte) Unit {
	return &unt{
		k: KindString,
		b: cloneBytes(payload),
		w: cloneBytes(payload),
	}
}

// NewStringWire creates a string unit with an explicit wire form.
func NewStringWire(payload []byte, wire []byte) Unit {
	return &unt{
		k: KindString,
		b: cloneBytes(payload),
		w: cloneBytes(wire),
	}
}

// NewInteger creates an integer unit with an explicit wire form.
func NewInteger(value uint32, wire []byte) Unit {
	return &unt{
		k: KindInteger,
		i: value,
		w: cloneBytes(wire),
	}
}

// NewNil creates a null unit with an empty wire form.
func NewNil() Unit {
	return &unt{
		k: KindNil,
	}
}

// NewComposite creates a composite unit; its wire form is the
// concatenation of the children wire forms.
func NewComposite(parts ...Unit) Unit {
	var w []byte

	for _, p := range parts {
		if p != nil {
			w = append(w, p.NetworkString()...)
		}
	}

	return &unt{
		k: KindComposite,
		p: parts,
		w: w,
	}
}

// NewError creates an error-marker unit carrying a diagnostic message.
func NewError(message string) Unit {
	return &unt{
		k: KindError,
		e: message,
	}
}
