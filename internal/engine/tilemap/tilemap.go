// Package tilemap renders a grid of atlas frames and loads level layouts.
package tilemap

import (
	"errors"
	"fmt"

	"github.com/Faultbox/pocketsprite/internal/engine/blit"
	"github.com/Faultbox/pocketsprite/pkg/atlas"
)

// ErrIndex is returned when a tile index slice is shorter than its grid.
var ErrIndex = errors.New("tile index out of grid")

// Render blits one tile per grid cell in row-major order. Cell (i, j) uses
// frame tiles[i+j*gridW] placed at (i*tileW, j*tileH), with no crop or scale.
func Render(sink blit.Sink, a *atlas.Atlas, tiles []int, gridW, gridH, tileW, tileH int) error {
	if gridW < 0 || gridH < 0 {
		return fmt.Errorf("%w: negative grid %dx%d", ErrIndex, gridW, gridH)
	}
	if len(tiles) < gridW*gridH {
		return fmt.Errorf("%w: %d tiles for a %dx%d grid", ErrIndex, len(tiles), gridW, gridH)
	}

	for j := 0; j < gridH; j++ {
		for i := 0; i < gridW; i++ {
			frame := tiles[i+j*gridW]
			if err := blit.Draw(sink, a, frame, i*tileW, j*tileH); err != nil {
				return fmt.Errorf("tile (%d,%d): %w", i, j, err)
			}
		}
	}

	return nil
}

// RenderLevel draws lvl with tileset, using the tileset's frame size as the
// cell size.
func RenderLevel(sink blit.Sink, tileset *atlas.Atlas, lvl *Level) error {
	tw, th := tileset.FrameSize()
	return Render(sink, tileset, lvl.Flatten(), lvl.Width, lvl.Height, tw, th)
}
