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

// Package tcp implements the transport acceptor for the TCP address
// families, running on an owned event loop pool. Accepted sockets get
// TCP_NODELAY and are wrapped into transport connections with ids
// allocated before the accept completes.
package tcp

import (
	"net"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
	libptc "github.com/OpenBand/barbacoa-server-lib/network/protocol"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"
	sckcfg "github.com/OpenBand/barbacoa-server-lib/socket/config"
)

// ServerTcp is the TCP transport acceptor.
type ServerTcp interface {
	libsck.Server
}

// New creates an inert TCP acceptor for the given configuration.
func New(cfg sckcfg.Server) (ServerTcp, error) {
	if cfg.Network == libptc.NetworkEmpty {
		cfg.Network = libptc.NetworkTCP
	}

	switch cfg.Network {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6:
	default:
		return nil, sckcfg.ErrorNetworkInvalid.Error(nil)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &srv{
		cfg: cfg,
		lop: libatm.NewValue[liblop.Loop](),
		lis: libatm.NewValue[net.Listener](),
		log: libatm.NewValue[liblog.FuncLog](),
	}, nil
}
