package levels

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-hive/internal/level"
)

// getTestdataPath returns path to testdata/levels.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader(getTestdataPath())

	entries, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	if strings.Join(ids, ",") != "alpha,beta" {
		t.Errorf("loaded ids = %v, want [alpha beta]", ids)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := NewLoader(getTestdataPath())

	beta, err := loader.LoadByID("beta")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if beta.Title != "Beta" {
		t.Errorf("Title = %q, want Beta", beta.Title)
	}
	if beta.Definition.EntityStride() != level.ShortEntityStride {
		t.Errorf("stride = %d, want %d", beta.Definition.EntityStride(), level.ShortEntityStride)
	}
	if !strings.HasSuffix(filepath.ToSlash(beta.FilePath), "nested/beta.json") {
		t.Errorf("FilePath = %q", beta.FilePath)
	}

	if _, err := loader.LoadByID("missing"); err == nil {
		t.Errorf("LoadByID(missing) succeeded")
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		file string
		code string
	}{
		{"broken-tiles.yaml", "TILE_COUNT_MISMATCH"},
		{"fractional.json", "NON_INTEGER"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := LoadFile(filepath.Join(getTestdataPath(), tt.file))
			if err == nil {
				t.Fatalf("LoadFile(%s) succeeded", tt.file)
			}
			var ve level.ValidationError
			if !errors.As(err, &ve) || ve.Code != tt.code {
				t.Errorf("LoadFile(%s) error = %v, want code %s", tt.file, err, tt.code)
			}
			if !errors.Is(err, level.ErrInvalidLevel) {
				t.Errorf("error %v does not wrap ErrInvalidLevel", err)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(getTestdataPath(), "garbage.yml")); err == nil {
		t.Errorf("LoadFile(garbage.yml) succeeded")
	}
	if _, err := LoadFile(filepath.Join(getTestdataPath(), "README.txt")); err == nil {
		t.Errorf("LoadFile(README.txt) succeeded")
	}
}

func TestLoaderMissingDirectory(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent"))
	if _, err := loader.LoadAll(); err == nil {
		t.Errorf("LoadAll on a missing directory succeeded")
	}
}

func TestLoaderPlainDirectory(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join(getTestdataPath(), "alpha.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "copy.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "copy" {
		t.Fatalf("entries = %+v, want one entry named copy", entries)
	}
	names, _ := os.ReadDir(dir)
	if len(names) != 1 {
		t.Errorf("loader created files: %d entries in dir", len(names))
	}
}

// Solutions found by breadth-first search over the pack.
var packSolutions = map[string]string{
	"01-first-push":      "ff",
	"02-around-the-bend": "flfflflb",
	"03-slab-walk":       "fflf",
	"04-relay":           "sff",
	"05-chain-reaction":  "fff",
	"06-two-bees":        "lfrfrbblf",
	"07-honeycomb":       "lfflbrbblblbrfrf",
}

func TestBuiltinPackSolvable(t *testing.T) {
	entries, err := Builtin().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(entries) != len(packSolutions) {
		t.Fatalf("builtin pack has %d levels, want %d", len(entries), len(packSolutions))
	}

	for _, e := range entries {
		t.Run(e.ID, func(t *testing.T) {
			solution, ok := packSolutions[e.ID]
			if !ok {
				t.Fatalf("no solution recorded for %s", e.ID)
			}

			wins := 0
			lvl, err := e.New(level.WithCompletion(func() { wins++ }))
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}

			for i, r := range solution {
				if wins > 0 {
					t.Fatalf("won early after %d inputs", i)
				}
				in, ok := level.ParseInput(r)
				if !ok {
					t.Fatalf("bad solution letter %q", r)
				}
				lvl.HandleInput(in)
				lvl.SettleAll()
			}

			if wins != 1 || !lvl.Won() {
				t.Errorf("solution %q: wins = %d, Won() = %v", solution, wins, lvl.Won())
			}
		})
	}
}
