package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Document, error) {
	var fl fileLevel
	if err := yaml.Unmarshal(data, &fl); err != nil {
		return Document{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return fl.document(), nil
}
