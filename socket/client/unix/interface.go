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

// Package unix implements the transport dialer for the unix local
// stream family, owning a single worker loop.
package unix

import (
	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
	libptc "github.com/OpenBand/barbacoa-server-lib/network/protocol"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"
	sckcfg "github.com/OpenBand/barbacoa-server-lib/socket/config"
)

// ClientUnix is the unix local stream transport dialer.
type ClientUnix interface {
	libsck.Client
}

// New creates an inert unix local dialer for the given configuration.
func New(cfg sckcfg.Client) (ClientUnix, error) {
	if cfg.Network == libptc.NetworkEmpty {
		cfg.Network = libptc.NetworkUnix
	}

	if cfg.Network != libptc.NetworkUnix {
		return nil, sckcfg.ErrorNetworkInvalid.Error(nil)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cli{
		cfg: cfg,
		lop: libatm.NewValue[liblop.Loop](),
		cnx: libatm.NewValue[libsck.Connection](),
		log: libatm.NewValue[liblog.FuncLog](),
	}, nil
}
