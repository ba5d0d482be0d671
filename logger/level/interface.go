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

// Package level defines the ordered severity levels used by the logger
// package, with conversions from and to string and logrus levels.
package level

// Level represents a log message severity.
// Levels are ordered from the most critical (PanicLevel) to the most
// verbose (DebugLevel); NilLevel disables logging.
type Level uint8

const (
	// PanicLevel is the highest severity; logs then calls panic.
	PanicLevel Level = iota
	// FatalLevel logs then terminates the process.
	FatalLevel
	// ErrorLevel is used for errors that should definitely be noted.
	ErrorLevel
	// WarnLevel is for non-critical entries that deserve eyes.
	WarnLevel
	// InfoLevel is for general operational entries.
	InfoLevel
	// DebugLevel is for verbose development logging.
	DebugLevel
	// NilLevel disables logging.
	NilLevel
)

// ListLevels returns all usable levels, ordered by severity.
func ListLevels() []Level {
	return []Level{
		PanicLevel,
		FatalLevel,
		ErrorLevel,
		WarnLevel,
		InfoLevel,
		DebugLevel,
	}
}
