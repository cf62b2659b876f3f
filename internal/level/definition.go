package level

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-hive/internal/hexagon"
)

// ErrInvalidLevel is matched by every ValidationError via errors.Is.
var ErrInvalidLevel = errors.New("invalid level")

// ValidationError describes why a level definition was rejected.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is makes validation errors match ErrInvalidLevel.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidLevel
}

func invalid(code, format string, args ...any) error {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Entity type codes used in level data.
const (
	CodeFocusedPlayer = 0
	CodePlayer        = 1
	CodeBlock         = 2
)

// Supported entity strides: (type, column, row, orientation[, cluster]).
const (
	ShortEntityStride = 4
	EntityStride      = 5
)

// Definition is the serialized form of a level.
type Definition struct {
	Title    string
	Clusters int   // Number of block clusters referenced by entities
	Columns  int   // 1..20
	Rows     int   // 1..20
	Tiles    []int // Row-major tile ids, len == Columns*Rows
	Entities []int // Flat entity tuples
	Stride   int   // 4 or 5; 0 selects 5
}

// EntitySpec is one decoded entity tuple.
type EntitySpec struct {
	Type        EntityType
	Focused     bool
	Position    hexagon.Position
	Orientation hexagon.Orientation
	Cluster     int
}

// EntityStride returns the tuple width used by Entities.
func (d Definition) EntityStride() int {
	if d.Stride == 0 {
		return EntityStride
	}
	return d.Stride
}

// Validate checks the definition without constructing anything.
func (d Definition) Validate() error {
	_, err := d.decode()
	return err
}

// Specs decodes and validates the entity tuples.
func (d Definition) Specs() ([]EntitySpec, error) {
	return d.decode()
}

func (d Definition) decode() ([]EntitySpec, error) {
	if d.Title == "" {
		return nil, invalid("MISSING_TITLE", "level has no title")
	}
	if err := validateDimension("columns", d.Columns); err != nil {
		return nil, err
	}
	if err := validateDimension("rows", d.Rows); err != nil {
		return nil, err
	}
	if d.Clusters < 0 {
		return nil, invalid("INVALID_CLUSTER_COUNT", "cluster count %d is negative", d.Clusters)
	}

	expected := d.Columns * d.Rows
	if len(d.Tiles) != expected {
		return nil, invalid("TILE_COUNT_MISMATCH",
			"tile count of %d does not match the expected %d (%d * %d)",
			len(d.Tiles), expected, d.Columns, d.Rows)
	}
	for i, t := range d.Tiles {
		if t < 0 || t >= TileTypeCount {
			return nil, invalid("INVALID_TILE",
				"tile #%d of %d is invalid, it should be between 0 and %d", i, t, TileTypeCount-1)
		}
	}

	stride := d.EntityStride()
	if stride != ShortEntityStride && stride != EntityStride {
		return nil, invalid("INVALID_STRIDE", "entity stride %d is not %d or %d",
			stride, ShortEntityStride, EntityStride)
	}
	if len(d.Entities)%stride != 0 {
		return nil, invalid("ENTITY_COUNT_MISMATCH",
			"entities array length of %d is not a multiple of %d", len(d.Entities), stride)
	}

	specs := make([]EntitySpec, 0, len(d.Entities)/stride)
	occupied := mapset.New[hexagon.Position]()
	focused := 0

	for i := 0; i < len(d.Entities); i += stride {
		n := i / stride
		spec, err := d.decodeEntity(n, d.Entities[i:i+stride])
		if err != nil {
			return nil, err
		}

		if occupied.Has(spec.Position) {
			return nil, invalid("ENTITY_OVERLAP", "entity #%d shares tile %v with another entity", n, spec.Position)
		}
		occupied.Put(spec.Position)

		if spec.Focused {
			focused++
		}
		specs = append(specs, spec)
	}

	switch {
	case focused == 0:
		return nil, invalid("MISSING_PLAYER", "no initially focused player found")
	case focused > 1:
		return nil, invalid("MULTIPLE_PLAYERS", "%d initially focused players found, want 1", focused)
	}

	return specs, nil
}

func (d Definition) decodeEntity(n int, tuple []int) (EntitySpec, error) {
	var spec EntitySpec

	switch tuple[0] {
	case CodeFocusedPlayer:
		spec.Type, spec.Focused = EntityPlayer, true
	case CodePlayer:
		spec.Type = EntityPlayer
	case CodeBlock:
		spec.Type = EntityBlock
	default:
		return spec, invalid("INVALID_ENTITY_TYPE", "entity #%d has type %d, want 0, 1 or 2", n, tuple[0])
	}

	spec.Position = hexagon.P(tuple[1], tuple[2])
	if !spec.Position.InBounds(d.Columns, d.Rows) {
		return spec, invalid("ENTITY_OUT_OF_BOUNDS", "entity #%d at %v is outside the %dx%d grid",
			n, spec.Position, d.Columns, d.Rows)
	}

	o := hexagon.Orientation(tuple[3])
	if tuple[3] < 0 || !o.Valid() {
		return spec, invalid("INVALID_ORIENTATION", "entity #%d has orientation %d, want 0..5", n, tuple[3])
	}
	spec.Orientation = o

	tile := TileType(d.Tiles[hexagon.TileIndex(spec.Position, d.Columns)])
	if tile == TileEmpty {
		return spec, invalid("ENTITY_ON_EMPTY", "entity #%d stands on an empty tile at %v", n, spec.Position)
	}
	if tile == TileSlab && spec.Type == EntityBlock {
		return spec, invalid("BLOCK_ON_SLAB", "block #%d stands on a slab at %v", n, spec.Position)
	}

	if len(tuple) == EntityStride && spec.Type == EntityBlock {
		cluster := tuple[4]
		if cluster < 0 || cluster > d.Clusters {
			return spec, invalid("INVALID_CLUSTER", "block #%d references cluster %d of %d", n, cluster, d.Clusters)
		}
		spec.Cluster = cluster
	}

	return spec, nil
}

func validateDimension(name string, v int) error {
	if v < 1 || v > hexagon.MaxDimension {
		return invalid("INVALID_DIMENSION", "grid %s %d is invalid, it should be an integer between 1 and %d",
			name, v, hexagon.MaxDimension)
	}
	return nil
}
