package codec

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ValueFromJSON decodes a seed or document object from JSON.
func ValueFromJSON(data []byte) (map[string]any, error) {
	var v map[string]any
	if err := gojson.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("codec: decode JSON value: %w", err)
	}
	return v, nil
}

// ValueToJSON encodes an extracted whole-object value as JSON.
func ValueToJSON(v map[string]any) ([]byte, error) {
	return gojson.Marshal(v)
}

// ValueFromYAML decodes a seed or document object from YAML.
func ValueFromYAML(data []byte) (map[string]any, error) {
	var v map[string]any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("codec: decode YAML value: %w", err)
	}
	return v, nil
}

// ValueToYAML encodes an extracted whole-object value as YAML.
func ValueToYAML(v map[string]any) ([]byte, error) {
	return yaml.Marshal(v)
}
