package formats

import (
	"encoding/json"
	"fmt"
)

// JSONLevel represents the JSON structure for a level file.
type JSONLevel struct {
	ID       string    `json:"id,omitempty"`
	Title    string    `json:"title"`
	Clusters float64   `json:"clusters"`
	Columns  float64   `json:"columns"`
	Rows     float64   `json:"rows"`
	Tiles    []float64 `json:"tiles"`
	Entities []float64 `json:"entities"`
	Stride   float64   `json:"stride,omitempty"`
}

// ParseJSON parses a JSON level file.
func ParseJSON(data []byte) (File, error) {
	var jl JSONLevel
	if err := json.Unmarshal(data, &jl); err != nil {
		return File{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return File(jl), nil
}
