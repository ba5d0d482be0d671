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

// Package server provides the user-facing accepting façade: it runs a
// transport acceptor on a pooled loop, wraps every accepted transport
// connection with the protocol template, tracks open connections by id,
// and delivers lifecycle callbacks.
//
// The acceptance ordering is load bearing: the wrapped connection is
// inserted into the table, then the new-connection callback runs, and
// only then is the first read issued, so user code can attach its
// receive observers before any byte is delivered.
package server

import (
	"time"

	libatm "github.com/OpenBand/barbacoa-server-lib/atomic"
	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
	libbld "github.com/OpenBand/barbacoa-server-lib/network/builder"
	libcnt "github.com/OpenBand/barbacoa-server-lib/network/connection"
	libptc "github.com/OpenBand/barbacoa-server-lib/network/protocol"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"
	sckcfg "github.com/OpenBand/barbacoa-server-lib/socket/config"
)

// Config is the user-facing server configuration: the transport
// settings plus the protocol template cloned for each accepted
// connection.
type Config struct {
	Transport sckcfg.Server
	Protocol  libbld.UnitBuilder
}

// ConfigTcp returns a TCP server configuration to fill in.
func ConfigTcp() Config {
	return Config{
		Transport: sckcfg.Server{
			Network: libptc.NetworkTCP,
		},
	}
}

// ConfigUnixLocal returns a unix local stream server configuration to
// fill in.
func ConfigUnixLocal() Config {
	return Config{
		Transport: sckcfg.Server{
			Network: libptc.NetworkUnix,
		},
	}
}

// StartCallback observes the acceptor readiness on a pool worker.
type StartCallback func()

// NewConnectionCallback receives each wrapped connection right after it
// was inserted into the table and before its first read.
type NewConnectionCallback func(c libcnt.Connection)

// FailCallback observes acceptor and connection level transport errors.
type FailCallback func(err error)

// Server is the user-facing accepting façade contract.
type Server interface {
	//OnStart registers the readiness observer
	OnStart(cb StartCallback) Server
	//OnNewConnection registers the accepted-connection observer
	OnNewConnection(cb NewConnectionCallback) Server
	//OnFail registers the transport failure observer
	OnFail(cb FailCallback) Server

	//Start spins the transport up with the given configuration
	Start(cfg Config) error

	//Stop closes the acceptor and stops the worker pool, then disconnects
	// every tracked connection when waitForRemoval is set; the table is
	// cleared in both cases. The disconnect observers run on the calling
	// goroutine, not on a pool worker. It must not be called from a worker
	// of the pool.
	Stop(waitForRemoval bool) error

	//IsRunning returns true while the transport runs
	IsRunning() bool

	//Wait blocks until the server started, and with untilStop until it
	// stopped; it returns false when the timeout elapsed first. A zero
	// timeout waits without limit.
	Wait(untilStop bool, timeout time.Duration) bool

	//Post injects a task on the server's loop from the outside
	Post(t liblop.Task) error

	//OpenConnections returns the tracked connection count
	OpenConnections() int

	//GetConnection returns a tracked connection by id
	GetConnection(id uint64) libcnt.Connection

	//SetLogger registers the logger accessor used by the server
	SetLogger(fct liblog.FuncLog)
}

// New creates an inert server façade.
func New() Server {
	return &srv{
		imp: libatm.NewValue[libsck.Server](),
		prt: libatm.NewValue[libbld.UnitBuilder](),
		cbs: libatm.NewValue[StartCallback](),
		cbn: libatm.NewValue[NewConnectionCallback](),
		cbf: libatm.NewValue[FailCallback](),
		cnx: libatm.NewMap[uint64, libcnt.Connection](),
		log: libatm.NewValue[liblog.FuncLog](),
	}
}
