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

// Package protocol defines the network kind enumeration used by the
// socket transport layer, with parsing from strings or numeric values
// and a full encoding surface (JSON, YAML, TOML, CBOR, text, viper).
package protocol

import (
	"bytes"
	"strings"
)

// NetworkProtocol enumerates the supported network address families.
type NetworkProtocol uint8

const (
	// NetworkEmpty is the zero value, meaning no protocol configured.
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

// Parse converts a protocol string into its NetworkProtocol value.
// Whitespace and surrounding quotes are tolerated, matching is case
// insensitive, and unknown strings map to NetworkEmpty.
func Parse(s string) NetworkProtocol {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "'")
	s = strings.Trim(s, "\"")
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)

	switch {
	case strings.EqualFold(s, NetworkUnix.String()):
		return NetworkUnix
	case strings.EqualFold(s, NetworkTCP.String()):
		return NetworkTCP
	case strings.EqualFold(s, NetworkTCP4.String()):
		return NetworkTCP4
	case strings.EqualFold(s, NetworkTCP6.String()):
		return NetworkTCP6
	case strings.EqualFold(s, NetworkUDP.String()):
		return NetworkUDP
	case strings.EqualFold(s, NetworkUDP4.String()):
		return NetworkUDP4
	case strings.EqualFold(s, NetworkUDP6.String()):
		return NetworkUDP6
	case strings.EqualFold(s, NetworkIP.String()):
		return NetworkIP
	case strings.EqualFold(s, NetworkIP4.String()):
		return NetworkIP4
	case strings.EqualFold(s, NetworkIP6.String()):
		return NetworkIP6
	case strings.EqualFold(s, NetworkUnixGram.String()):
		return NetworkUnixGram
	}

	return NetworkEmpty
}

// ParseBytes converts a protocol byte slice into its NetworkProtocol value.
func ParseBytes(p []byte) NetworkProtocol {
	return Parse(string(bytes.TrimSpace(p)))
}

// ParseInt64 converts a numeric protocol value into its NetworkProtocol.
// Out of range values map to NetworkEmpty.
func ParseInt64(i int64) NetworkProtocol {
	if i < int64(NetworkUnix) || i > int64(NetworkUnixGram) {
		return NetworkEmpty
	}

	return NetworkProtocol(i)
}
