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

package protocol

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ViperDecoderHook returns a mapstructure decode hook converting string
// or numeric configuration values into NetworkProtocol. Unknown strings
// decode to NetworkEmpty without error; out of range numeric values are
// rejected.
func ViperDecoderHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		var z NetworkProtocol

		if to != reflect.TypeOf(z) {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			if s, k := data.(string); k {
				return Parse(s), nil
			}

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if i, k := numToInt64(data); k {
				if p := ParseInt64(i); p != NetworkEmpty {
					return p, nil
				}

				return nil, fmt.Errorf("network protocol: invalid value '%v'", data)
			}
		}

		return data, nil
	}
}

// ViperDecoderOption composes the protocol decoder hook with any given
// extra hooks into a viper decoder option.
func ViperDecoderOption(hooks ...mapstructure.DecodeHookFunc) viper.DecoderConfigOption {
	hooks = append(hooks, ViperDecoderHook())
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(hooks...))
}

func numToInt64(data interface{}) (int64, bool) {
	switch v := data.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return clampUint64(uint64(v)), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return clampUint64(v), true
	}

	return 0, false
}

func clampUint64(v uint64) int64 {
	if v > uint64(1<<62) {
		return -1
	}

	return int64(v)
}
