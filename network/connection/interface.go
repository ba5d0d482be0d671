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

// Package connection provides the user-facing connection: the place
// where framing, send ordering and user callbacks meet. It wraps a
// transport connection, owns a units-builder manager cloned from the
// protocol template, buffers outgoing units until Commit, and fires the
// receive and disconnect observers.
//
// Receive dispatch is serialized per connection: the transport runs at
// most one read at a time and the next read is issued only after every
// unit of the current chunk was delivered.
package connection

import (
	libbld "github.com/OpenBand/barbacoa-server-lib/network/builder"
	libunt "github.com/OpenBand/barbacoa-server-lib/network/unit"
	libsck "github.com/OpenBand/barbacoa-server-lib/socket"
)

// ReceiveCallback observes each received unit in arrival order.
type ReceiveCallback func(c Connection, u libunt.Unit)

// DisconnectIdCallback observes the teardown with the connection id.
type DisconnectIdCallback func(id uint64)

// DisconnectCallback observes the teardown.
type DisconnectCallback func()

// Connection is the user-facing connection contract.
type Connection interface {
	//ID returns the transport connection id
	ID() uint64

	//IsConnected returns false once the transport disconnected
	IsConnected() bool

	//RemoteEndpoint returns the printable peer address
	RemoteEndpoint() string

	//Disconnect tears down the transport connection
	Disconnect()

	//Protocol exposes this connection's builder so callers construct
	// outgoing units with Create
	Protocol() libbld.UnitBuilder

	//Post appends the unit's wire form to the send buffer without I/O
	Post(u libunt.Unit) Connection

	//PostBytes frames the payload with this connection's protocol and
	// appends it to the send buffer
	PostBytes(raw []byte) Connection

	//Commit atomically drains the send buffer into one asynchronous write
	Commit() Connection

	//OnReceive subscribes a receive observer; multiple are supported
	OnReceive(cb ReceiveCallback) Connection

	//OnDisconnect subscribes a teardown observer
	OnDisconnect(cb DisconnectCallback) Connection

	//OnDisconnectId subscribes a teardown observer receiving the id
	OnDisconnectId(cb DisconnectIdCallback) Connection

	//AsyncRead issues the next transport read; the owner calls it once
	// after the user observers were attached
	AsyncRead()
}

// New wraps a transport connection with the given protocol template;
// the template is cloned so every connection owns its framing state.
func New(raw libsck.Connection, protocol libbld.UnitBuilder) Connection {
	c := &cnt{
		raw: raw,
		prt: protocol.Clone(),
	}

	c.mgr = libbld.NewManager(c.prt.Clone())

	raw.OnDisconnect(c.onDisconnected)

	return c
}
