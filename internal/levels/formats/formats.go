// Package formats provides the level file parsers.
// Every format decodes into File, which carries numbers as float64 so that
// non-integer dimensions and ids are reported instead of silently truncated.
package formats

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-hive/internal/level"
)

// File is a parsed level file before validation.
type File struct {
	ID       string
	Title    string
	Clusters float64
	Columns  float64
	Rows     float64
	Tiles    []float64
	Entities []float64
	Stride   float64
}

// Definition converts the file to a level definition. Every number must be
// an integer; the result is not yet validated.
func (f File) Definition() (level.Definition, error) {
	var err error
	def := level.Definition{Title: f.Title}

	if def.Clusters, err = integer("clusters", f.Clusters); err != nil {
		return level.Definition{}, err
	}
	if def.Columns, err = integer("columns", f.Columns); err != nil {
		return level.Definition{}, err
	}
	if def.Rows, err = integer("rows", f.Rows); err != nil {
		return level.Definition{}, err
	}
	if def.Stride, err = integer("stride", f.Stride); err != nil {
		return level.Definition{}, err
	}

	def.Tiles = make([]int, len(f.Tiles))
	for i, v := range f.Tiles {
		if def.Tiles[i], err = integer(fmt.Sprintf("tile #%d", i), v); err != nil {
			return level.Definition{}, err
		}
	}

	def.Entities = make([]int, len(f.Entities))
	for i, v := range f.Entities {
		if def.Entities[i], err = integer(fmt.Sprintf("entity value #%d", i), v); err != nil {
			return level.Definition{}, err
		}
	}

	return def, nil
}

// Parse decodes data according to the file extension.
func Parse(data []byte, ext string) (File, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return File{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}

func integer(name string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Trunc(v) != v {
		return 0, level.ValidationError{
			Code:    "NON_INTEGER",
			Message: fmt.Sprintf("%s of %v is not an integer", name, v),
		}
	}
	if math.Abs(v) > math.MaxInt32 {
		return 0, level.ValidationError{
			Code:    "NON_INTEGER",
			Message: fmt.Sprintf("%s of %v is out of range", name, v),
		}
	}
	return int(v), nil
}
