package service

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeArguments flattens a JSON object into the raw strings a form would
// submit: booleans become "1" or "0", numbers their decimal text and nested
// values their JSON encoding. Null members are treated as absent.
func decodeArguments(raw json.RawMessage) (map[string]string, error) {
	out := map[string]string{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var members map[string]any
	if err := decoder.Decode(&members); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	for key, value := range members {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			out[key] = v
		case bool:
			if v {
				out[key] = "1"
			} else {
				out[key] = "0"
			}
		case json.Number:
			out[key] = v.String()
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("argument %s: %w", key, err)
			}
			out[key] = string(encoded)
		}
	}
	return out, nil
}
