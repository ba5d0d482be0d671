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

// Package logger provides the leveled logging facility used by every
// component of this module, backed by sirupsen/logrus.
//
// Components never hold a Logger directly: they store a FuncLog accessor
// so the logger can be swapped at runtime, and fall back to the shared
// default logger when the accessor or its result is nil.
package logger

import (
	"io"
	"sync"

	loglvl "github.com/OpenBand/barbacoa-server-lib/logger/level"
)

// FuncLog is an accessor returning a Logger instance.
// A nil FuncLog or a nil result means the default logger applies.
type FuncLog func() Logger

// Fields carries custom key/value information added to log entries.
type Fields map[string]interface{}

// Logger is the minimal leveled logging contract of this module.
type Logger interface {
	io.Writer

	//SetLevel changes the minimal level of logged messages
	SetLevel(lvl loglvl.Level)
	//GetLevel returns the minimal level of logged messages
	GetLevel() loglvl.Level

	//SetFields sets the default fields added to every entry
	SetFields(field Fields)
	//GetFields returns the default fields added to every entry
	GetFields() Fields

	//Debug logs a message with DebugLevel
	Debug(message string, data interface{}, args ...interface{})
	//Info logs a message with InfoLevel
	Info(message string, data interface{}, args ...interface{})
	//Warning logs a message with WarnLevel
	Warning(message string, data interface{}, args ...interface{})
	//Error logs a message with ErrorLevel
	Error(message string, data interface{}, args ...interface{})

	//CheckError logs all non nil errors with ErrorLevel and returns true
	// if at least one was logged
	CheckError(message string, err ...error) bool

	//Clone duplicates the logger with an independent level and fields
	Clone() Logger
}

var (
	defLogger Logger
	defOnce   sync.Once
)

// GetDefault returns the shared default logger (stderr, InfoLevel).
func GetDefault() Logger {
	defOnce.Do(func() {
		defLogger = New()
	})

	return defLogger
}

// New creates a Logger writing to stderr with InfoLevel.
func New() Logger {
	return newLogger()
}
