package level

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed levels/*.yaml
var embedded embed.FS

// DefaultName is the embedded level used when no level path is configured.
const DefaultName = "village.yaml"

// Parse dispatches on the file extension: .tmx is read as a Tiled map,
// .yaml/.yml as a YAML level.
func Parse(name string, data []byte) (*Level, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tmx":
		return ParseTMX(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("level: %s: unsupported format", name)
	}
}

// Load reads and parses the level file at path.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	l, err := Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	return l, nil
}

// LoadEmbedded parses one of the levels compiled into the binary.
func LoadEmbedded(name string) (*Level, error) {
	data, err := embedded.ReadFile("levels/" + name)
	if err != nil {
		return nil, fmt.Errorf("level: load embedded %s: %w", name, err)
	}
	return Parse(name, data)
}

// Default returns the embedded default village.
func Default() (*Level, error) {
	return LoadEmbedded(DefaultName)
}
