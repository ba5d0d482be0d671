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

import liberr "github.com/OpenBand/barbacoa-server-lib/errors"

const (
	// ErrorConfigInvalid reports a failed struct validation.
	ErrorConfigInvalid liberr.CodeError = iota + liberr.MinPkgSocketCfg
	// ErrorEndpointInvalid reports an endpoint not matching the family.
	ErrorEndpointInvalid
	// ErrorPortInvalid reports a TCP port outside 1..65535.
	ErrorPortInvalid
	// ErrorNetworkInvalid reports a non stream address family.
	ErrorNetworkInvalid
)

func init() {
	liberr.RegisterIdFctMessage(ErrorConfigInvalid, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorConfigInvalid:
		return "invalid transport configuration"
	case ErrorEndpointInvalid:
		return "endpoint does not match the configured address family"
	case ErrorPortInvalid:
		return "tcp port must be in range 1..65535"
	case ErrorNetworkInvalid:
		return "address family must be a stream family (tcp, tcp4, tcp6, unix)"
	}

	return liberr.NullMessage
}
