package params

import (
	"fmt"
	"strings"
)

// ParseKeyValuePairs converts a slice of "key=value" strings, as given to
// -D, into a map. Later pairs override earlier ones.
//
// Example:
//
//	props, err := ParseKeyValuePairs([]string{"eis.host=db1", "pool.max=50"})
//	// Returns: map[string]string{"eis.host": "db1", "pool.max": "50"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("property %q is not in key=value format (example: -D eis.host=localhost)", pair)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("property has empty key: %q", pair)
		}

		result[key] = value
	}

	return result, nil
}

// Merge layers property maps. Keys in later maps win.
func Merge(layers ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			result[k] = v
		}
	}
	return result
}
