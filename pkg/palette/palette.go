// Package palette provides 16-slot RGB565 palettes for indexed sprites.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Size is the number of slots in a palette.
const Size = 16

// ErrPaletteSize is returned when a palette file does not hold exactly 16 colors.
var ErrPaletteSize = errors.New("palette must have 16 colors")

// Palette maps slot indices to RGB565 colors.
type Palette [Size]uint16

// Named slots of the default palette.
const (
	White = iota
	Gray
	DarkGray
	Black
	Purple
	Pink
	Red
	Orange
	Brown
	Beige
	Yellow
	LightGreen
	Green
	DarkBlue
	Blue
	LightBlue
)

// Default returns the handheld's stock palette.
func Default() Palette {
	return Palette{
		White:      0xffff,
		Gray:       0xacd0,
		DarkGray:   0x5268,
		Black:      0x0000,
		Purple:     0x9008,
		Pink:       0xca30,
		Red:        0xd8e4,
		Orange:     0xfd42,
		Brown:      0xcc68,
		Beige:      0xfeb2,
		Yellow:     0xf720,
		LightGreen: 0x8668,
		Green:      0x044a,
		DarkBlue:   0x0210,
		Blue:       0x4439,
		LightBlue:  0x7ddf,
	}
}

// RGB565 packs 8-bit channels into an RGB565 color.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// Channels splits an RGB565 color into its 5-6-5 bit channels.
func Channels(c uint16) (r, g, b uint8) {
	return uint8(c >> 11), uint8(c>>5) & 0x3f, uint8(c) & 0x1f
}

// Pack joins 5-6-5 bit channels into an RGB565 color.
func Pack(r, g, b uint8) uint16 {
	return uint16(r&0x1f)<<11 | uint16(g&0x3f)<<5 | uint16(b&0x1f)
}

// ToRGBA expands an RGB565 color to 8-bit RGBA, replicating the high bits
// into the low bits so white stays 0xff.
func ToRGBA(c uint16) color.RGBA {
	r, g, b := Channels(c)
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}

// Color returns the slot's color. Slots outside the palette wrap modulo 16.
func (p Palette) Color(slot uint16) uint16 {
	return p[slot%Size]
}

// file is the YAML layout of a palette file.
type file struct {
	Name   string   `yaml:"name"`
	Colors []uint16 `yaml:"colors"`
}

// Load decodes a YAML palette:
//
//	name: hero
//	colors: [0xffff, 0xacd0, ...]
func Load(r io.Reader) (Palette, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return Palette{}, fmt.Errorf("decoding palette: %w", err)
	}
	if len(f.Colors) != Size {
		return Palette{}, fmt.Errorf("%w: %q has %d", ErrPaletteSize, f.Name, len(f.Colors))
	}

	var p Palette
	copy(p[:], f.Colors)
	return p, nil
}

// LoadFile decodes a YAML palette from disk.
func LoadFile(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return Palette{}, fmt.Errorf("opening palette: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Save encodes the palette as YAML.
func (p Palette) Save(w io.Writer, name string) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(file{Name: name, Colors: p[:]})
}
