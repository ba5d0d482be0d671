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

package unit

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

type unt struct {
	k Kind
	b []byte // payload for string units
	w []byte // wire form
	i uint32
	p []Unit
	e string
}

func cloneBytes(p []byte) []byte {
	if p == nil {
		return nil
	}

	res := make([]byte, len(p))
	copy(res, p)
	return res
}

func (u *unt) Kind() Kind {
	return u.k
}

func (u *unt) IsNil() bool {
	return u.k == KindNil
}

func (u *unt) IsString() bool {
	return u.k == KindString
}

func (u *unt) IsInteger() bool {
	return u.k == KindInteger
}

func (u *unt) IsComposite() bool {
	return u.k == KindComposite
}

func (u *unt) IsError() bool {
	return u.k == KindError
}

func (u *unt) Bytes() []byte {
	if u.k != KindString {
		return nil
	}

	return cloneBytes(u.b)
}

func (u *unt) String() string {
	if u.k != KindString {
		return ""
	}

	return string(u.b)
}

func (u *unt) Integer() uint32 {
	if u.k != KindInteger {
		return 0
	}

	return u.i
}

func (u *unt) Parts() []Unit {
	if u.k != KindComposite {
		return nil
	}

	res := make([]Unit, len(u.p))
	copy(res, u.p)
	return res
}

func (u *unt) Err() string {
	if u.k != KindError {
		return ""
	}

	return u.e
}

func (u *unt) NetworkString() []byte {
	return cloneBytes(u.w)
}

func (u *unt) PrintableString() string {
	switch u.k {
	case KindNil:
		return "<nil>"
	case KindError:
		return "<error: " + u.e + ">"
	case KindInteger:
		return strconv.FormatUint(uint64(u.i), 10)
	case KindComposite:
		parts := make([]string, 0, len(u.p))
		for _, p := range u.p {
			if p != nil {
				parts = append(parts, p.PrintableString())
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}

	var sb strings.Builder

	for _, c := range u.b {
		if c >= 0x20 && c < 0x7f {
			sb.WriteByte(c)
		} else {
			sb.WriteString(fmt.Sprintf("\\x%02x", c))
		}
	}

	return sb.String()
}

func (u *unt) Equal(other Unit) bool {
	if other == nil || u.k != other.Kind() {
		return false
	}

	switch u.k {
	case KindNil:
		return true
	case KindError:
		return u.e == other.Err()
	case KindInteger:
		return u.i == other.Integer()
	case KindString:
		return bytes.Equal(u.b, other.Bytes())
	case KindComposite:
		parts := other.Parts()
		if len(parts) != len(u.p) {
			return false
		}
		for i := range u.p {
			if u.p[i] == nil || parts[i] == nil {
				if u.p[i] != parts[i] {
					return false
				}
				continue
			}
			if !u.p[i].Equal(parts[i]) {
				return false
			}
		}
		return true
	}

	return false
}
