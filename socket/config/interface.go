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

// Package config holds the transport layer configurations for servers
// and clients, validated structs deserializable from any configuration
// source (JSON, YAML, TOML, viper).
package config

import (
	"github.com/go-playground/validator/v10"

	libdur "github.com/OpenBand/barbacoa-server-lib/duration"
	liberr "github.com/OpenBand/barbacoa-server-lib/errors"
	libptc "github.com/OpenBand/barbacoa-server-lib/network/protocol"
)

// Server is the transport acceptor configuration.
type Server struct {
	// Network selects the address family: tcp, tcp4, tcp6 or unix.
	Network libptc.NetworkProtocol `json:"network" yaml:"network" toml:"network" mapstructure:"network"`

	// Address is the bind endpoint: "host:port" for TCP families, a
	// filesystem path for unix. The unix socket file is removed on stop.
	Address string `json:"address" yaml:"address" toml:"address" mapstructure:"address" validate:"required"`

	// ReuseAddress sets SO_REUSEADDR on the acceptor socket.
	ReuseAddress bool `json:"reuseAddress" yaml:"reuseAddress" toml:"reuseAddress" mapstructure:"reuseAddress"`

	// ChunkSize bounds each read request, zero meaning the default.
	ChunkSize int `json:"chunkSize" yaml:"chunkSize" toml:"chunkSize" mapstructure:"chunkSize" validate:"gte=0"`

	// WorkerThreads sizes the owned loop pool, zero meaning one worker.
	WorkerThreads int `json:"workerThreads" yaml:"workerThreads" toml:"workerThreads" mapstructure:"workerThreads" validate:"gte=0"`

	// WorkerName is the OS-level name applied to pool worker threads.
	WorkerName string `json:"workerName" yaml:"workerName" toml:"workerName" mapstructure:"workerName"`

	// TimeoutRead bounds each read operation, zero disabling the timer.
	TimeoutRead libdur.Duration `json:"timeoutRead" yaml:"timeoutRead" toml:"timeoutRead" mapstructure:"timeoutRead"`

	// TimeoutWrite bounds each write operation, zero disabling the timer.
	TimeoutWrite libdur.Duration `json:"timeoutWrite" yaml:"timeoutWrite" toml:"timeoutWrite" mapstructure:"timeoutWrite"`
}

// Client is the transport dialer configuration.
type Client struct {
	// Network selects the address family: tcp, tcp4, tcp6 or unix.
	Network libptc.NetworkProtocol `json:"network" yaml:"network" toml:"network" mapstructure:"network"`

	// Address is the peer endpoint: "host:port" for TCP families, a
	// filesystem path for unix.
	Address string `json:"address" yaml:"address" toml:"address" mapstructure:"address" validate:"required"`

	// ChunkSize bounds each read request, zero meaning the default.
	ChunkSize int `json:"chunkSize" yaml:"chunkSize" toml:"chunkSize" mapstructure:"chunkSize" validate:"gte=0"`

	// TimeoutConnect bounds the dial, zero meaning no limit.
	TimeoutConnect libdur.Duration `json:"timeoutConnect" yaml:"timeoutConnect" toml:"timeoutConnect" mapstructure:"timeoutConnect"`

	// WorkerName is the OS-level name applied to the owned loop worker.
	WorkerName string `json:"workerName" yaml:"workerName" toml:"workerName" mapstructure:"workerName"`
}

func validate(v interface{}) error {
	if er := validator.New().Struct(v); er != nil {
		if ers, ok := er.(validator.ValidationErrors); ok {
			res := ErrorConfigInvalid.Error(nil)
			for _, f := range ers {
				res.Add(liberr.New(f.Namespace() + ": " + f.ActualTag()))
			}
			return res
		}

		return ErrorConfigInvalid.Error(er)
	}

	return nil
}

// Validate checks the server configuration.
func (c Server) Validate() error {
	if err := validate(c); err != nil {
		return err
	}

	return checkEndpoint(c.Network, c.Address)
}

// Validate checks the client configuration.
func (c Client) Validate() error {
	if err := validate(c); err != nil {
		return err
	}

	return checkEndpoint(c.Network, c.Address)
}
