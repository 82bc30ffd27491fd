// Package numbers converts loosely-typed scalars from decoded JSON
// payloads into concrete numeric types.
package numbers

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Float converts a scalar decoded with json.Decoder.UseNumber into a
// float64. Numbers arrive as json.Number, numeric strings as string;
// absent values decode to nil and count as zero.
func Float(val any) (float64, error) {
	switch v := val.(type) {
	case json.Number:
		return v.Float64()
	case string:
		if v == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.ParseFloat(v, 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported float type %T", val)
	}
}
