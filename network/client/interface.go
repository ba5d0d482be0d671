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

// Package client provides the user-facing dialing façade: it owns a
// single worker loop, dials once per Connect, holds the resulting
// connection and releases it on disconnect. A Connect issued while a
// previous attempt is still in flight abandons the older attempt; no
// callback of an abandoned attempt ever fires.
package client

import (
	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
	libbld "github.com/OpenBand/barbacoa-server-lib/network/builder"
	libcnt "github.com/OpenBand/barbacoa-server-lib/network/connection"
	libptc "github.com/OpenBand/barbacoa-server-lib/network/protocol"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"
	sckcfg "github.com/OpenBand/barbacoa-server-lib/socket/config"
)

// Config is the user-facing client configuration: the transport
// settings plus the protocol template for the dialed connection.
type Config struct {
	Transport sckcfg.Client
	Protocol  libbld.UnitBuilder
}

// ConfigTcp returns a TCP client configuration to fill in.
func ConfigTcp() Config {
	return Config{
		Transport: sckcfg.Client{
			Network: libptc.NetworkTCP,
		},
	}
}

// ConfigUnixLocal returns a unix local stream client configuration to
// fill in.
func ConfigUnixLocal() Config {
	return Config{
		Transport: sckcfg.Client{
			Network: libptc.NetworkUnix,
		},
	}
}

// ConnectCallback receives the established connection after the user
// observers can be attached; the first read is issued right after it
// returns.
type ConnectCallback func(c libcnt.Connection)

// FailCallback observes dial failures.
type FailCallback func(err error)

// Client is the user-facing dialing façade contract.
type Client interface {
	//OnConnect registers the established-connection observer
	OnConnect(cb ConnectCallback) Client
	//OnFail registers the dial failure observer
	OnFail(cb FailCallback) Client

	//Connect dials the configured endpoint; a previous in-flight
	// attempt is abandoned, an established connection is released first
	Connect(cfg Config) error

	//Connection returns the held connection, nil while disconnected
	Connection() libcnt.Connection

	//Post injects a task on the client's loop from the outside
	Post(t liblop.Task) error

	//Stop abandons any in-flight attempt, disconnects and stops the
	// owned loop
	Stop() error

	//SetLogger registers the logger accessor used by the client
	SetLogger(fct liblog.FuncLog)
}

// New creates an inert client façade.
func New() Client {
	return &cli{
		imp: libatm.NewValue[libsck.Client](),
		cbc: libatm.NewValue[ConnectCallback](),
		cbf: libatm.NewValue[FailCallback](),
		cnx: libatm.NewValue[libcnt.Connection](),
		log: libatm.NewValue[liblog.FuncLog](),
	}
}
