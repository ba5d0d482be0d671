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
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *NetworkProtocol) UnmarshalJSON(bytes []byte) error {
	*p = ParseBytes(bytes)
	return nil
}

func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func (p *NetworkProtocol) UnmarshalYAML(value *yaml.Node) error {
	*p = Parse(value.Value)
	return nil
}

func (p NetworkProtocol) MarshalTOML() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *NetworkProtocol) UnmarshalTOML(i interface{}) error {
	if b, k := i.([]byte); k {
		*p = ParseBytes(b)
		return nil
	}

	if s, k := i.(string); k {
		*p = Parse(s)
		return nil
	}

	return fmt.Errorf("network protocol: value not in valid format")
}

func (p NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *NetworkProtocol) UnmarshalText(bytes []byte) error {
	*p = ParseBytes(bytes)
	return nil
}

func (p NetworkProtocol) MarshalCBOR() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *NetworkProtocol) UnmarshalCBOR(bytes []byte) error {
	*p = ParseBytes(bytes)
	return nil
}
