package tilemap

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Prop is an animated sprite placed on top of the tile layer.
type Prop struct {
	Sprite string `yaml:"sprite"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
}

// Level is a tile layout loaded from YAML.
type Level struct {
	Name    string  `yaml:"name"`
	Tileset string  `yaml:"tileset"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	GroundY int     `yaml:"ground_y"`
	Tiles   [][]int `yaml:"tiles"`
	Props   []Prop  `yaml:"props"`
}

// Flatten returns the tile rows concatenated in row-major order.
func (l *Level) Flatten() []int {
	out := make([]int, 0, l.Width*l.Height)
	for _, row := range l.Tiles {
		out = append(out, row...)
	}
	return out
}

// Validate checks that the tile rows match the declared grid.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: level %q has a %dx%d grid", ErrIndex, l.Name, l.Width, l.Height)
	}
	if len(l.Tiles) != l.Height {
		return fmt.Errorf("%w: level %q has %d rows, want %d", ErrIndex, l.Name, len(l.Tiles), l.Height)
	}
	for j, row := range l.Tiles {
		if len(row) != l.Width {
			return fmt.Errorf("%w: level %q row %d has %d tiles, want %d", ErrIndex, l.Name, j, len(row), l.Width)
		}
	}
	return nil
}

// LoadLevel decodes and validates a level.
func LoadLevel(r io.Reader) (*Level, error) {
	var lvl Level
	if err := yaml.NewDecoder(r).Decode(&lvl); err != nil {
		return nil, fmt.Errorf("decoding level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// LoadLevelFile reads a level from disk.
func LoadLevelFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening level: %w", err)
	}
	defer f.Close()

	return LoadLevel(f)
}
