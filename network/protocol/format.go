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

package protocol

// String returns the protocol name as expected by the net package
// ("tcp", "unix", ...). Invalid values render as an empty string.
func (p NetworkProtocol) String() string {
	switch p {
	case NetworkUnix:
		return "unix"
	case NetworkTCP:
		return "tcp"
	case NetworkTCP4:
		return "tcp4"
	case NetworkTCP6:
		return "tcp6"
	case NetworkUDP:
		return "udp"
	case NetworkUDP4:
		return "udp4"
	case NetworkUDP6:
		return "udp6"
	case NetworkIP:
		return "ip"
	case NetworkIP4:
		return "ip4"
	case NetworkIP6:
		return "ip6"
	case NetworkUnixGram:
		return "unixgram"
	}

	return ""
}

// Code returns the normalized protocol code, usable as the network
// argument of net.Dial / net.Listen.
func (p NetworkProtocol) Code() string {
	return p.String()
}

func (p NetworkProtocol) isValid() bool {
	return p >= NetworkUnix && p <= NetworkUnixGram
}

func (p NetworkProtocol) Int() int {
	if !p.isValid() {
		return 0
	}

	return int(p)
}

func (p NetworkProtocol) Int64() int64 {
	if !p.isValid() {
		return 0
	}

	return int64(p)
}

func (p NetworkProtocol) Uint() uint {
	if !p.isValid() {
		return 0
	}

	return uint(p)
}

func (p NetworkProtocol) Uint64() uint64 {
	if !p.isValid() {
		return 0
	}

	return uint64(p)
}
