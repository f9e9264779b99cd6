//go:build jsonv2

package jsoncompat

import json "encoding/json/v2"

// Marshal routes through encoding/json/v2 when built with the jsonv2
// tag.
func Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal routes through encoding/json/v2 when built with the jsonv2
// tag.
func Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
