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

// Package socket is the transport layer: a transport-agnostic
// asynchronous connection over a raw byte-stream socket, with the TCP
// and unix-local acceptors and dialers producing such connections on an
// owned event loop pool.
//
// Completions are posted on the owning loop. Every completion runs
// through the connection scope latch: once Disconnect was called, stale
// completions no-op instead of touching torn down state.
package socket

import (
	"time"

	liblog "github.com/OpenBand/barbacoa-server-lib/logger"
	liblop "github.com/OpenBand/barbacoa-server-lib/loop"
)

// ReadCallback receives one read completion: success is false when the
// connection failed, data holds up to the requested size otherwise.
type ReadCallback func(success bool, data []byte)

// WriteCallback receives one write completion.
type WriteCallback func(success bool, written int)

// DisconnectCallback observes the connection teardown.
type DisconnectCallback func(id uint64)

// StartCallback observes the acceptor readiness.
type StartCallback func()

// NewConnectionCallback receives each accepted transport connection.
type NewConnectionCallback func(c Connection)

// ConnectCallback receives the dialed transport connection.
type ConnectCallback func(c Connection)

// FailCallback observes transport errors that are not tied to one
// established connection.
type FailCallback func(err error)

// Connection is the transport endpoint contract: an asynchronous
// byte-stream socket with identity, lifecycle and per-operation timeout.
type Connection interface {
	//ID returns the connection id, unique in the scope of its server or client
	ID() uint64

	//RemoteEndpoint returns the printable peer address
	RemoteEndpoint() string

	//IsConnected returns false once Disconnect ran
	IsConnected() bool

	//ChunkSize returns the configured read chunk size
	ChunkSize() int

	//AsyncRead requests up to size bytes; the callback is posted on the
	// owning loop. At most one read may be outstanding.
	AsyncRead(size int, cb ReadCallback) error

	//AsyncWrite ships the whole buffer; the callback is posted on the
	// owning loop. Writes are serialized per connection.
	AsyncWrite(data []byte, cb WriteCallback) error

	//SetOpTimeouts bounds each read and write operation, zero meaning
	// no bound; an expired bound surfaces as an error on the pending
	// completion and disconnects
	SetOpTimeouts(read time.Duration, write time.Duration)

	//SetTimeout arms a steady timer canceling the socket on expiry,
	// which surfaces as an error on the pending completion
	SetTimeout(d time.Duration, onTimeout func())

	//CancelTimeout disarms the timeout timer
	CancelTimeout()

	//Disconnect tears the connection down. It is idempotent; disconnect
	// callbacks run exactly once, in reverse registration order.
	Disconnect()

	//OnDisconnect registers a teardown observer
	OnDisconnect(cb DisconnectCallback)
}

// Server is the transport acceptor contract.
type Server interface {
	//Start binds the endpoint and begins accepting; callbacks are
	// invoked on workers of the owned loop
	Start(onStart StartCallback, onNew NewConnectionCallback, onFail FailCallback) error

	//Stop closes the acceptor and stops the worker pool. It must not be
	// called from one of the pool's own workers.
	Stop() error

	//IsRunning returns true while the acceptor loop runs
	IsRunning() bool

	//Loop returns the owned worker pool
	Loop() liblop.Loop

	//SetLogger registers the logger accessor used by the transport
	SetLogger(fct liblog.FuncLog)
}

// Client is the transport dialer contract: it owns one worker loop and
// produces at most one connection per Connect.
type Client interface {
	//Connect resolves and dials the endpoint; on success the connect
	// callback receives the transport connection
	Connect(onConnect ConnectCallback, onFail FailCallback) error

	//Stop disconnects and stops the owned loop
	Stop() error

	//IsRunning returns true while the owned loop runs
	IsRunning() bool

	//Loop returns the owned worker loop
	Loop() liblop.Loop

	//SetLogger registers the logger accessor used by the transport
	SetLogger(fct liblog.FuncLog)
}
