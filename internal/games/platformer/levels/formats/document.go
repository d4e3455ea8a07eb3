// Package formats provides pluggable level file format parsers.
// Every format decodes into a Document; category names are resolved later
// by the levels package.
package formats

// Document is a parsed level file, geometry in world pixels.
type Document struct {
	ID           string
	Name         string
	Viewport     Size
	Spawn        Rect
	Platforms    []Object
	Obstacles    []Object
	Collectibles []Object
}

// Size is a width/height pair.
type Size struct {
	W float64 `yaml:"w" toml:"w"`
	H float64 `yaml:"h" toml:"h"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	W float64 `yaml:"w" toml:"w"`
	H float64 `yaml:"h" toml:"h"`
}

// Object is a rectangle with a category name ("desk", "chair", "coffee"...).
type Object struct {
	Category string  `yaml:"category" toml:"category"`
	X        float64 `yaml:"x" toml:"x"`
	Y        float64 `yaml:"y" toml:"y"`
	W        float64 `yaml:"w" toml:"w"`
	H        float64 `yaml:"h" toml:"h"`
}

// Defaults used when a file leaves them out.
const (
	DefaultViewportW = 800
	DefaultViewportH = 400
	DefaultSpawnW    = 30
	DefaultSpawnH    = 40
)

// fileLevel is the on-disk layout shared by the YAML and TOML formats.
type fileLevel struct {
	ID           string   `yaml:"id" toml:"id"`
	Name         string   `yaml:"name" toml:"name"`
	Viewport     Size     `yaml:"viewport" toml:"viewport"`
	Spawn        Rect     `yaml:"spawn" toml:"spawn"`
	Platforms    []Object `yaml:"platforms" toml:"platforms"`
	Obstacles    []Object `yaml:"obstacles" toml:"obstacles"`
	Collectibles []Object `yaml:"collectibles" toml:"collectibles"`
}

func (f fileLevel) document() Document {
	doc := Document{
		ID:           f.ID,
		Name:         f.Name,
		Viewport:     f.Viewport,
		Spawn:        f.Spawn,
		Platforms:    f.Platforms,
		Obstacles:    f.Obstacles,
		Collectibles: f.Collectibles,
	}
	doc.applyDefaults()
	return doc
}

func (d *Document) applyDefaults() {
	if d.Viewport.W == 0 {
		d.Viewport.W = DefaultViewportW
	}
	if d.Viewport.H == 0 {
		d.Viewport.H = DefaultViewportH
	}
	if d.Spawn.W == 0 {
		d.Spawn.W = DefaultSpawnW
	}
	if d.Spawn.H == 0 {
		d.Spawn.H = DefaultSpawnH
	}
	if d.Name == "" {
		d.Name = d.ID
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml", ".tmx"}
}
