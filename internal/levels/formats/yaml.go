package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string    `yaml:"id,omitempty"`
	Title    string    `yaml:"title"`
	Clusters float64   `yaml:"clusters,omitempty"`
	Columns  float64   `yaml:"columns"`
	Rows     float64   `yaml:"rows"`
	Tiles    []float64 `yaml:"tiles"`
	Entities []float64 `yaml:"entities"`
	Stride   float64   `yaml:"stride,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (File, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return File{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return File(yl), nil
}

// MarshalYAML encodes a file back to YAML, as written by `hive levels export`.
func MarshalYAML(f File) ([]byte, error) {
	out, err := yaml.Marshal(YAMLLevel(f))
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}
