// Package levels loads platformer levels from YAML, TOML and Tiled (TMX)
// files and ships the built-in office level.
// This package depends on platformer but platformer does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/focusflow/internal/core"
	"github.com/vovakirdan/focusflow/internal/games/platformer"
	"github.com/vovakirdan/focusflow/internal/games/platformer/levels/formats"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// DefaultID is the ID of the built-in level used when none is configured.
const DefaultID = "office"

// ErrNotFound is returned when a level ID matches no file.
var ErrNotFound = errors.New("levels: level not found")

// Default returns the built-in office level.
func Default() (platformer.Level, error) {
	return Builtin().LoadByID(DefaultID)
}

// Builtin returns a loader over the levels embedded in the binary.
func Builtin() *Loader {
	sub, _ := fs.Sub(builtinFS, "data")
	return NewFSLoader(sub)
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader rooted at a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over any file system (embed.FS, fstest.MapFS).
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads a single level file from disk, by any path.
func LoadFile(filePath string) (platformer.Level, error) {
	return NewLoader(filepath.Dir(filePath)).LoadFile(filepath.Base(filePath))
}

// LoadAll scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]platformer.Level, error) {
	var levels []platformer.Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		lvl, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory: %w", err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file relative to the loader root.
func (l *Loader) LoadFile(p string) (platformer.Level, error) {
	doc, err := l.parse(p)
	if err != nil {
		return platformer.Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}
	if doc.ID == "" {
		doc.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
		if doc.Name == "" {
			doc.Name = doc.ID
		}
	}

	lvl, err := Build(doc)
	if err != nil {
		return platformer.Level{}, fmt.Errorf("levels: %s: %w", p, err)
	}
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (platformer.Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return platformer.Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return platformer.Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func (l *Loader) parse(p string) (formats.Document, error) {
	ext := strings.ToLower(path.Ext(p))
	if ext == ".tmx" {
		return formats.LoadTMX(l.fsys, p)
	}

	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return formats.Document{}, err
	}
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".toml":
		return formats.ParseTOML(data)
	default:
		return formats.Document{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Build resolves category names and converts a parsed document into a level
// template.
func Build(doc formats.Document) (platformer.Level, error) {
	lvl := platformer.Level{
		ID:        doc.ID,
		Name:      doc.Name,
		ViewportW: doc.Viewport.W,
		ViewportH: doc.Viewport.H,
		Spawn: platformer.Character{
			X: doc.Spawn.X,
			Y: doc.Spawn.Y,
			W: doc.Spawn.W,
			H: doc.Spawn.H,
		},
	}

	for i, o := range doc.Platforms {
		kind, err := platformer.ParsePlatformKind(o.Category)
		if err != nil {
			return platformer.Level{}, fmt.Errorf("platform %d: %w", i, err)
		}
		lvl.Platforms = append(lvl.Platforms, platformer.Platform{Box: box(o), Kind: kind})
	}
	for i, o := range doc.Obstacles {
		kind, err := platformer.ParseObstacleKind(o.Category)
		if err != nil {
			return platformer.Level{}, fmt.Errorf("obstacle %d: %w", i, err)
		}
		lvl.Obstacles = append(lvl.Obstacles, platformer.Obstacle{Box: box(o), Kind: kind})
	}
	for i, o := range doc.Collectibles {
		kind, err := platformer.ParseCollectibleKind(o.Category)
		if err != nil {
			return platformer.Level{}, fmt.Errorf("collectible %d: %w", i, err)
		}
		lvl.Collectibles = append(lvl.Collectibles, platformer.Collectible{Box: box(o), Kind: kind})
	}

	return lvl, nil
}

func box(o formats.Object) core.Box {
	return core.NewBox(o.X, o.Y, o.W, o.H)
}
