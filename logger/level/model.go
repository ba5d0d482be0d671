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

package level

import (
	"strings"

	"github.com/sirupsen/logrus"
)

func (l Level) Uint8() uint8 {
	return uint8(l)
}

// String converts the Level to its human-readable representation.
// The returned string can be parsed back using Parse.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "Debug"
	case InfoLevel:
		return "Info"
	case WarnLevel:
		return "Warning"
	case ErrorLevel:
		return "Error"
	case FatalLevel:
		return "Fatal"
	case PanicLevel:
		return "Critical"
	case NilLevel:
		return ""
	}

	return "unknown"
}

// Logrus converts the Level into the matching logrus level.
func (l Level) Logrus() logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	case PanicLevel:
		return logrus.PanicLevel
	}

	return logrus.PanicLevel
}

// Parse converts a level string (as returned by String, case insensitive,
// also accepting Warn, Err, Crit and Panic) back into a Level. The empty
// string maps to NilLevel; other unknown strings map to InfoLevel.
func Parse(s string) Level {
	switch {
	case strings.EqualFold(s, "Debug"):
		return DebugLevel
	case strings.EqualFold(s, "Info"):
		return InfoLevel
	case strings.EqualFold(s, "Warning"), strings.EqualFold(s, "Warn"):
		return WarnLevel
	case strings.EqualFold(s, "Error"), strings.EqualFold(s, "Err"):
		return ErrorLevel
	case strings.EqualFold(s, "Fatal"):
		return FatalLevel
	case strings.EqualFold(s, "Critical"), strings.EqualFold(s, "Crit"), strings.EqualFold(s, "Panic"):
		return PanicLevel
	case s == "":
		return NilLevel
	}

	return InfoLevel
}
