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

package duration

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ViperDecoderHook returns a mapstructure decode hook converting string
// configuration values into Duration. Register it on viper unmarshalling
// so "5h30m" or "2d12h" strings decode directly into config structs.
func ViperDecoderHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		var (
			z = Duration(0)
			s string
			k bool
		)

		// check source type is string and destination type is Duration
		if from.Kind() != reflect.String || to != reflect.TypeOf(z) {
			return data, nil
		}

		if s, k = data.(string); !k {
			return data, nil
		}

		if e := z.parseString(s); e != nil {
			return nil, e
		}

		return z, nil
	}
}

// ViperDecoderOption composes the duration decoder hook with any given
// extra hooks into a viper decoder option, to be passed to viper
// Unmarshal calls.
func ViperDecoderOption(hooks ...mapstructure.DecodeHookFunc) viper.DecoderConfigOption {
	hooks = append(hooks, ViperDecoderHook())
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(hooks...))
}
