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

// Package errors provides coded error handling with stack location capture
// and parent chaining, compatible with the standard errors.Is / errors.As.
//
// Each package of this module reserves a code range in modules.go, declares
// its codes in its own errors.go and registers a message function for them.
//
// Example usage:
//
//	const ErrorParamInvalid liberr.CodeError = iota + liberr.MinPkgLoop
//
//	if cfg.Workers < 1 {
//	    return ErrorParamInvalid.Error(nil)
//	}
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const (
	// UnknownError represents an error with no specific code.
	UnknownError CodeError = 0

	// UnknownMessage is the default message for UnknownError.
	UnknownMessage = "unknown error"

	// NullMessage represents an empty error message.
	NullMessage = ""
)

// Error is the main interface extending the standard error with code,
// parent chaining and source location.
type Error interface {
	error

	//IsCode checks if the error's direct code matches the given code
	IsCode(code CodeError) bool
	//HasCode checks if the error or any parent has the given code
	HasCode(code CodeError) bool
	//GetCode returns the direct code of the error
	GetCode() CodeError

	//Is implements compatibility with the standard errors.Is
	Is(e error) bool
	//HasParent returns true if at least one parent is chained
	HasParent() bool
	//GetParent returns the chained parents, optionally with the error itself first
	GetParent(withMainError bool) []error
	//Unwrap implements compatibility with the standard errors.As / errors.Is
	Unwrap() []error

	//Add chains all non nil given errors as parents
	Add(parent ...error)
	//SetParent replaces the parent chain with the given errors
	SetParent(parent ...error)

	//Code returns the direct code as uint16
	Code() uint16
	//StringError returns the direct message without parents
	StringError() string
	//GetTrace returns the "file:line" source location captured at creation
	GetTrace() string

	//CodeError returns code and message composed with the given pattern
	// (defaults to "[code]: message")
	CodeError(pattern string) string
	//CodeErrorTrace returns code, message and trace composed with the given
	// pattern (defaults to "[code]: message (trace)")
	CodeErrorTrace(pattern string) string
}

const (
	defaultPattern      = "[%d]: %s"
	defaultPatternTrace = "[%d]: %s (%s)"
)

type ers struct {
	c uint16
	e string
	p []error
	t string
}

func newError(code CodeError, message string, skip int, parent ...error) Error {
	e := &ers{
		c: code.Uint16(),
		e: message,
		p: make([]error, 0, len(parent)),
		t: getFrame(skip + 1),
	}

	e.Add(parent...)

	return e
}

// New creates an uncoded Error from a plain message with optional parents.
func New(message string, parent ...error) Error {
	return newError(UnknownError, message, 1, parent...)
}

// Is checks if the given error is of type Error.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns the given error as an Error interface if possible, nil otherwise.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}

	return nil
}

// Has checks if the given error or any of its parents carries the given code.
func Has(e error, code CodeError) bool {
	if err := Get(e); err == nil {
		return false
	} else {
		return err.HasCode(code)
	}
}

func getFrame(skip int) string {
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		return fmt.Sprintf("%s:%d", filterPath(file), line)
	}

	return ""
}

func filterPath(file string) string {
	if i := strings.LastIndex(file, "/"); i >= 0 && i < len(file)-1 {
		return file[i+1:]
	}

	return file
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code.Uint16()
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}

	for _, p := range e.p {
		if err := Get(p); err != nil && err.HasCode(code) {
			return true
		}
	}

	return false
}

func (e *ers) GetCode() CodeError {
	return CodeError(e.c)
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}

	if er, ok := err.(*ers); ok {
		if e.c > 0 || er.c > 0 {
			return e.c == er.c
		}

		return strings.EqualFold(e.e, er.e)
	}

	return strings.EqualFold(e.e, err.Error())
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) GetParent(withMainError bool) []error {
	var res = make([]error, 0, len(e.p)+1)

	if withMainError {
		res = append(res, &ers{c: e.c, e: e.e, t: e.t})
	}

	for _, p := range e.p {
		res = append(res, p)

		if err := Get(p); err != nil {
			res = append(res, err.GetParent(false)...)
		}
	}

	return res
}

func (e *ers) Unwrap() []error {
	return e.p
}

func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}

		e.p = append(e.p, v)
	}
}

func (e *ers) SetParent(parent ...error) {
	e.p = make([]error, 0, len(parent))
	e.Add(parent...)
}

func (e *ers) Code() uint16 {
	return e.c
}

func (e *ers) StringError() string {
	return e.e
}

func (e *ers) GetTrace() string {
	return e.t
}

func (e *ers) CodeError(pattern string) string {
	if pattern == "" {
		pattern = defaultPattern
	}

	return fmt.Sprintf(pattern, e.c, e.e)
}

func (e *ers) CodeErrorTrace(pattern string) string {
	if pattern == "" {
		pattern = defaultPatternTrace
	}

	return fmt.Sprintf(pattern, e.c, e.e, e.t)
}

func (e *ers) Error() string {
	var buf = make([]string, 0, len(e.p)+1)

	buf = append(buf, e.CodeErrorTrace(""))

	for _, p := range e.p {
		if err := Get(p); err != nil {
			buf = append(buf, err.CodeErrorTrace(""))
		} else {
			buf = append(buf, p.Error())
		}
	}

	return strings.Join(buf, ", ")
}
