package formats

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Object group names recognised in Tiled maps.
const (
	GroupPlatforms    = "platforms"
	GroupObstacles    = "obstacles"
	GroupCollectibles = "collectibles"
	GroupSpawn        = "spawn"
)

// LoadTMX parses a Tiled map. Geometry comes from rectangle objects in the
// named object groups; each object's category is its "category" property,
// falling back to the object name. The map's pixel height is the viewport
// height.
func LoadTMX(fsys fs.FS, tmxPath string) (Document, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return Document{}, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	id := strings.TrimSuffix(path.Base(tmxPath), path.Ext(tmxPath))
	doc := Document{
		ID:   id,
		Name: id,
		Viewport: Size{
			W: DefaultViewportW,
			H: float64(m.Height * m.TileHeight),
		},
	}

	spawnFound := false
	for _, og := range m.ObjectGroups {
		for _, o := range og.Objects {
			obj := Object{
				Category: o.Properties.GetString("category"),
				X:        o.X,
				Y:        o.Y,
				W:        o.Width,
				H:        o.Height,
			}
			if obj.Category == "" {
				obj.Category = strings.ToLower(o.Name)
			}

			switch og.Name {
			case GroupPlatforms:
				doc.Platforms = append(doc.Platforms, obj)
			case GroupObstacles:
				doc.Obstacles = append(doc.Obstacles, obj)
			case GroupCollectibles:
				doc.Collectibles = append(doc.Collectibles, obj)
			case GroupSpawn:
				if !spawnFound {
					doc.Spawn = Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
					spawnFound = true
				}
			}
		}
	}

	if !spawnFound {
		return Document{}, fmt.Errorf("load TMX %s: no object in %q group", tmxPath, GroupSpawn)
	}

	doc.applyDefaults()
	return doc, nil
}
