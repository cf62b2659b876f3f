// Package levels loads hive level files from disk or from the built-in pack.
// This package depends on level but level does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hive/internal/level"
	"github.com/vovakirdan/tui-hive/internal/levels/formats"
)

//go:embed pack/*.yaml pack/*.json
var packFS embed.FS

// Entry is a validated level file.
type Entry struct {
	ID         string
	Title      string
	FilePath   string
	File       formats.File
	Definition level.Definition
}

// New builds a playable level from the entry.
func (e Entry) New(opts ...level.Option) (*level.Level, error) {
	return level.New(e.Definition, opts...)
}

// Loader handles loading levels from a file system.
type Loader struct {
	Root string
	fsys fs.FS

	// Logger receives skipped-file diagnostics. Nil disables them.
	Logger *log.Logger
}

// NewLoader creates a loader reading from a directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// Builtin creates a loader over the embedded level pack.
func Builtin() *Loader {
	sub, err := fs.Sub(packFS, "pack")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded pack: %v", err))
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// LoadAll scans and loads all level files, skipping invalid ones.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Entry, error) {
	var entries []Entry

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		entry, err := l.load(p)
		if err != nil {
			if l.Logger != nil {
				l.Logger.Debug("skipping level file", "path", p, "error", err)
			}
			return nil
		}

		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Entry, error) {
	entries, err := l.LoadAll()
	if err != nil {
		return Entry{}, err
	}

	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}

	return Entry{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	entries, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids, nil
}

func (l *Loader) load(p string) (Entry, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Entry{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	entry, err := parse(data, p)
	if err != nil {
		return Entry{}, err
	}
	entry.FilePath = path.Join(l.Root, p)
	return entry, nil
}

// LoadFile loads and validates a single level file from disk.
func LoadFile(p string) (Entry, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Entry{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	entry, err := parse(data, filepath.ToSlash(p))
	if err != nil {
		return Entry{}, err
	}
	entry.FilePath = p
	return entry, nil
}

func parse(data []byte, p string) (Entry, error) {
	ext := strings.ToLower(path.Ext(p))
	file, err := formats.Parse(data, ext)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	def, err := file.Definition()
	if err != nil {
		return Entry{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if err := def.Validate(); err != nil {
		return Entry{}, fmt.Errorf("validating file %s: %w", p, err)
	}

	id := file.ID
	if id == "" {
		id = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}

	return Entry{
		ID:         id,
		Title:      file.Title,
		File:       file,
		Definition: def,
	}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
