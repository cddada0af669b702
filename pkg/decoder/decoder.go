package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeMap converts a generic map into T through JSON, ignoring keys T doesn't declare.
func DecodeMap[T any](m map[string]any) (T, error) {
	return decode[T](m, false)
}

// DecodeMapStrict is DecodeMap but fails on keys T doesn't declare.
func DecodeMapStrict[T any](m map[string]any) (T, error) {
	return decode[T](m, true)
}

func decode[T any](m map[string]any, strict bool) (T, error) {
	var out T

	b, err := json.Marshal(m)
	if err != nil {
		return out, fmt.Errorf("failed to marshal map: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	if strict {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode map: %w", err)
	}

	return out, nil
}
