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

package config

import (
	"net"
	"strconv"

	liberr "github.com/OpenBand/barbacoa-server-lib/errors"
	libptc "github.com/OpenBand/barbacoa-server-lib/network/protocol"
)

// checkEndpoint validates the address shape against the address family:
// TCP families need "host:port" with a non zero port, unix needs a
// filesystem path.
func checkEndpoint(p libptc.NetworkProtocol, address string) error {
	switch p {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6:
		_, port, err := net.SplitHostPort(address)
		if err != nil {
			return ErrorEndpointInvalid.Error(err)
		}

		n, err := strconv.Atoi(port)
		if err != nil {
			return ErrorEndpointInvalid.Error(err)
		}

		if n < 1 || n > 65535 {
			return ErrorPortInvalid.Error(nil)
		}

		return nil

	case libptc.NetworkUnix:
		if address == "" {
			return ErrorEndpointInvalid.Error(nil)
		}

		return nil
	}

	return ErrorNetworkInvalid.Error(liberr.New("network " + p.String() + " is not a stream family"))
}
