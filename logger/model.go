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

package logger

import (
	"os"
	"sync"

	loglvl "github.com/OpenBand/barbacoa-server-lib/logger/level"
	"github.com/sirupsen/logrus"
)

type lgr struct {
	m sync.RWMutex
	l *logrus.Logger
	v loglvl.Level
	f Fields
}

func newLogger() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000",
		FullTimestamp:   true,
	})

	return &lgr{
		l: l,
		v: loglvl.InfoLevel,
		f: make(Fields),
	}
}

func (o *lgr) Write(p []byte) (n int, err error) {
	o.entry(loglvl.InfoLevel, string(p), nil)
	return len(p), nil
}

func (o *lgr) SetLevel(lvl loglvl.Level) {
	o.m.Lock()
	defer o.m.Unlock()

	o.v = lvl

	if lvl != loglvl.NilLevel {
		o.l.SetLevel(lvl.Logrus())
	}
}

func (o *lgr) GetLevel() loglvl.Level {
	o.m.RLock()
	defer o.m.RUnlock()

	return o.v
}

func (o *lgr) SetFields(field Fields) {
	o.m.Lock()
	defer o.m.Unlock()

	if field == nil {
		field = make(Fields)
	}

	o.f = field
}

func (o *lgr) GetFields() Fields {
	o.m.RLock()
	defer o.m.RUnlock()

	res := make(Fields, len(o.f))
	for k, v := range o.f {
		res[k] = v
	}

	return res
}

func (o *lgr) entry(lvl loglvl.Level, message string, data interface{}, args ...interface{}) {
	o.m.RLock()

	if o.v == loglvl.NilLevel || lvl > o.v {
		o.m.RUnlock()
		return
	}

	ent := logrus.NewEntry(o.l)

	if len(o.f) > 0 {
		ent = ent.WithFields(logrus.Fields(o.f))
	}

	o.m.RUnlock()

	if data != nil {
		ent = ent.WithField("data", data)
	}

	if len(args) > 0 {
		ent.Logf(lvl.Logrus(), message, args...)
	} else {
		ent.Log(lvl.Logrus(), message)
	}
}

func (o *lgr) Debug(message string, data interface{}, args ...interface{}) {
	o.entry(loglvl.DebugLevel, message, data, args...)
}

func (o *lgr) Info(message string, data interface{}, args ...interface{}) {
	o.entry(loglvl.InfoLevel, message, data, args...)
}

func (o *lgr) Warning(message string, data interface{}, args ...interface{}) {
	o.entry(loglvl.WarnLevel, message, data, args...)
}

func (o *lgr) Error(message string, data interface{}, args ...interface{}) {
	o.entry(loglvl.ErrorLevel, message, data, args...)
}

func (o *lgr) CheckError(message string, err ...error) bool {
	var found bool

	for _, e := range err {
		if e == nil {
			continue
		}

		o.entry(loglvl.ErrorLevel, message, e.Error())
		found = true
	}

	return found
}

func (o *lgr) Clone() Logger {
	o.m.RLock()
	defer o.m.RUnlock()

	res := &lgr{
		l: o.l,
		v: o.v,
		f: make(Fields, len(o.f)),
	}

	for k, v := range o.f {
		res.f[k] = v
	}

	return res
}
