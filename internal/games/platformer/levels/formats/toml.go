package formats

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML level file. Geometry lists are arrays of tables:
//
//	[[platforms]]
//	category = "desk"
//	x = 300
//	y = 280
//	w = 120
//	h = 24
func ParseTOML(data []byte) (Document, error) {
	var fl fileLevel
	md, err := toml.Decode(string(data), &fl)
	if err != nil {
		return Document{}, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Document{}, fmt.Errorf("toml decode: unknown key %q", undecoded[0].String())
	}
	return fl.document(), nil
}
