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

package app

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	liberr "github.com/OpenBand/barbacoa-server-lib/errors"
)

// Config enumerates the supervisor options.
type Config struct {
	// Daemonize detaches the standard streams from the controlling
	// terminal. Process forking is left to the init system.
	Daemonize bool `json:"daemonize" yaml:"daemonize" toml:"daemonize" mapstructure:"daemonize"`

	// LockIO redirects stdin, stdout and stderr to the null device.
	LockIO bool `json:"lockIO" yaml:"lockIO" toml:"lockIO" mapstructure:"lockIO"`

	// EnableCorefile raises the core file size limit to unlimited and
	// archives a pre-existing core file under a timestamped name.
	EnableCorefile bool `json:"enableCorefile" yaml:"enableCorefile" toml:"enableCorefile" mapstructure:"enableCorefile"`

	// CorefileFailThreadOnly is kept in the configuration only; the
	// supervisor does not apply it and the core dump scope is unchanged.
	CorefileFailThreadOnly bool `json:"corefileFailThreadOnly" yaml:"corefileFailThreadOnly" toml:"corefileFailThreadOnly" mapstructure:"corefileFailThreadOnly"`

	// CorefileDisableExclPolicy is kept in the configuration only; the
	// supervisor does not apply it and the core dump policy is unchanged.
	CorefileDisableExclPolicy bool `json:"corefileDisableExclPolicy" yaml:"corefileDisableExclPolicy" toml:"corefileDisableExclPolicy" mapstructure:"corefileDisableExclPolicy"`

	// StdumpFilePath is where the raw stack dump is written on a fail
	// signal; empty disables dump capture.
	StdumpFilePath string `json:"stdumpFilePath" yaml:"stdumpFilePath" toml:"stdumpFilePath" mapstructure:"stdumpFilePath" validate:"omitempty,filepath"`
}

// Validate checks the configuration and returns a coded error carrying
// each validation failure.
func (c Config) Validate() error {
	if er := validator.New().Struct(c); er != nil {
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

// ConfigFromViper unmarshals a Config from the given viper instance key.
func ConfigFromViper(v *viper.Viper, key string) (Config, error) {
	var cfg Config

	if v == nil {
		return cfg, ErrorConfigInvalid.Error(nil)
	}

	if key == "" {
		if e := v.Unmarshal(&cfg); e != nil {
			return cfg, ErrorConfigInvalid.Error(e)
		}
	} else if e := v.UnmarshalKey(key, &cfg); e != nil {
		return cfg, ErrorConfigInvalid.Error(e)
	}

	return cfg, cfg.Validate()
}
