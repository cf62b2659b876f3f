package level

import (
	"errors"
	"testing"
)

func validDefinition() Definition {
	return Definition{
		Title:    "valid",
		Clusters: 1,
		Columns:  2,
		Rows:     2,
		Tiles:    []int{F, S, L, F},
		Entities: []int{
			CodeFocusedPlayer, 0, 0, down, 0,
			CodeBlock, 1, 1, 0, 1,
		},
	}
}

func TestDefinitionValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Definition)
		code   string
	}{
		{"valid", func(d *Definition) {}, ""},
		{"missing title", func(d *Definition) { d.Title = "" }, "MISSING_TITLE"},
		{"zero columns", func(d *Definition) { d.Columns = 0 }, "INVALID_DIMENSION"},
		{"too many rows", func(d *Definition) { d.Rows = 21 }, "INVALID_DIMENSION"},
		{"tile count", func(d *Definition) { d.Tiles = d.Tiles[:3] }, "TILE_COUNT_MISMATCH"},
		{"tile id too large", func(d *Definition) { d.Tiles[3] = TileTypeCount }, "INVALID_TILE"},
		{"negative tile id", func(d *Definition) { d.Tiles[0] = -1 }, "INVALID_TILE"},
		{"bad stride", func(d *Definition) { d.Stride = 3 }, "INVALID_STRIDE"},
		{"ragged entities", func(d *Definition) { d.Entities = d.Entities[:7] }, "ENTITY_COUNT_MISMATCH"},
		{"unknown entity type", func(d *Definition) { d.Entities[5] = 3 }, "INVALID_ENTITY_TYPE"},
		{"entity out of bounds", func(d *Definition) { d.Entities[6] = 2 }, "ENTITY_OUT_OF_BOUNDS"},
		{"bad orientation", func(d *Definition) { d.Entities[3] = 6 }, "INVALID_ORIENTATION"},
		{"overlap", func(d *Definition) { d.Entities[6], d.Entities[7] = 0, 0 }, "ENTITY_OVERLAP"},
		{"entity on empty", func(d *Definition) { d.Tiles[3] = E }, "ENTITY_ON_EMPTY"},
		{"block on slab", func(d *Definition) { d.Entities[6], d.Entities[7] = 0, 1 }, "BLOCK_ON_SLAB"},
		{"cluster out of range", func(d *Definition) { d.Entities[9] = 2 }, "INVALID_CLUSTER"},
		{"no focused player", func(d *Definition) { d.Entities[0] = CodePlayer }, "MISSING_PLAYER"},
		{"two focused players", func(d *Definition) { d.Entities[5] = CodeFocusedPlayer }, "MULTIPLE_PLAYERS"},
		{"negative clusters", func(d *Definition) { d.Clusters = -1 }, "INVALID_CLUSTER_COUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDefinition()
			tt.mutate(&d)

			err := d.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}

			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want ValidationError %s", err, tt.code)
			}
			if ve.Code != tt.code {
				t.Errorf("Validate() code = %s, want %s (%v)", ve.Code, tt.code, err)
			}
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("errors.Is(%v, ErrInvalidLevel) = false", err)
			}
		})
	}
}

func TestShortStride(t *testing.T) {
	d := validDefinition()
	d.Stride = ShortEntityStride
	d.Entities = []int{
		CodeFocusedPlayer, 0, 0, down,
		CodePlayer, 0, 1, up,
		CodeBlock, 1, 1, 0,
	}

	specs, err := d.Specs()
	if err != nil {
		t.Fatalf("Specs() error: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("len(specs) = %d, want 3", len(specs))
	}
	if specs[2].Cluster != 0 {
		t.Errorf("short stride block has cluster %d", specs[2].Cluster)
	}
	if !specs[0].Focused || specs[1].Focused {
		t.Errorf("focus flags = %v, %v", specs[0].Focused, specs[1].Focused)
	}
}

func TestNewRejectsInvalidDefinition(t *testing.T) {
	d := validDefinition()
	d.Entities[0] = CodePlayer

	l, err := New(d)
	if err == nil {
		t.Fatalf("New() accepted a level without a focused player")
	}
	if l != nil {
		t.Errorf("New() returned a level alongside an error")
	}
	if !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("New() error %v does not wrap ErrInvalidLevel", err)
	}
}

func TestPlayerClusterIgnored(t *testing.T) {
	d := validDefinition()
	d.Entities[4] = 7

	specs, err := d.Specs()
	if err != nil {
		t.Fatalf("Specs() error: %v", err)
	}
	if specs[0].Cluster != 0 {
		t.Errorf("player cluster = %d, want 0", specs[0].Cluster)
	}
}
