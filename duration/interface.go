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

// Package duration provides an extended duration type with days notation
// and multiple encoding formats (JSON, YAML, TOML, CBOR, text), plus a
// viper/mapstructure decoder hook, so timeouts in server and client
// configurations deserialize from any configuration source.
//
// Example usage:
//
//	type Config struct {
//	    TimeoutConnect duration.Duration `json:"timeoutConnect"`
//	}
//
//	d, _ := duration.Parse("2d12h")
//	fmt.Println(d.String()) // Output: 2d12h0m0s
package duration

import (
	"time"
)

type Duration time.Duration

// Parse parses a duration string with an optional leading days component
// ("5d23h15m13s") and returns the matching Duration.
func Parse(s string) (Duration, error) {
	return parseString(s)
}

// ParseByte parses a byte slice representation of a duration.
func ParseByte(p []byte) (Duration, error) {
	return parseString(string(p))
}

// Seconds returns a Duration representing i seconds.
func Seconds(i int64) Duration {
	return Duration(time.Duration(i) * time.Second)
}

// Minutes returns a Duration representing i minutes.
func Minutes(i int64) Duration {
	return Duration(time.Duration(i) * time.Minute)
}

// Hours returns a Duration representing i hours.
func Hours(i int64) Duration {
	return Duration(time.Duration(i) * time.Hour)
}

// Days returns a Duration representing i days.
func Days(i int64) Duration {
	return Duration(time.Duration(i) * 24 * time.Hour)
}

// Millis returns a Duration representing i milliseconds.
func Millis(i int64) Duration {
	return Duration(time.Duration(i) * time.Millisecond)
}
