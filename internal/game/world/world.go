// Package world assembles a playable screen from assets: the level
// tilemap, its animated props and the avatar.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/pocketsprite/internal/engine/blit"
	"github.com/Faultbox/pocketsprite/internal/engine/debug"
	"github.com/Faultbox/pocketsprite/internal/engine/input"
	"github.com/Faultbox/pocketsprite/internal/engine/tilemap"
	"github.com/Faultbox/pocketsprite/internal/game/avatar"
	"github.com/Faultbox/pocketsprite/internal/logger"
	"github.com/Faultbox/pocketsprite/pkg/atlas"
	"github.com/Faultbox/pocketsprite/pkg/palette"
)

// Palette slots recolored by the shirt tint, darkest first.
const (
	ShirtDark  = 11
	ShirtMid   = 12
	ShirtLight = 13
)

// Loader resolves asset names. *assets.Manager implements it.
type Loader interface {
	Atlas(name string) (*atlas.Atlas, error)
	Palette(name string) (palette.Palette, error)
	Level(name string) (*tilemap.Level, error)
}

// Config selects the assets and tuning of a world.
type Config struct {
	Level      string
	Sprite     string
	Palette    string // indexed sprites only, empty = default palette
	ShirtColor uint16 // 0 keeps the palette as loaded
	Params     avatar.Params
	Overlay    bool
}

type prop struct {
	anim *atlas.Animator
	x, y int
}

// World is one screen of play.
type World struct {
	level   *tilemap.Level
	tileset *atlas.Atlas
	props   []prop
	hero    *avatar.Avatar
	scene   palette.Palette // tiles and props
	palette palette.Palette // avatar, indexed sprites only
	indexed bool
	overlay bool
	ticks   uint64
	log     *zap.Logger
}

// New loads the level, its props and the avatar sprite. The level ground
// line and pixel width override the matching avatar params.
func New(l Loader, cfg Config) (*World, error) {
	lvl, err := l.Level(cfg.Level)
	if err != nil {
		return nil, err
	}
	tileset, err := l.Atlas(lvl.Tileset)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
	}

	w := &World{
		level:   lvl,
		tileset: tileset,
		scene:   palette.Default(),
		overlay: cfg.Overlay,
		log:     logger.Named("world"),
	}

	for _, p := range lvl.Props {
		a, err := l.Atlas(p.Sprite)
		if err != nil {
			return nil, fmt.Errorf("level %s: prop: %w", lvl.Name, err)
		}
		w.props = append(w.props, prop{anim: atlas.NewAnimator(a), x: p.X, y: p.Y})
	}

	sprite, err := l.Atlas(cfg.Sprite)
	if err != nil {
		return nil, err
	}
	if sprite.Mode() == atlas.ModeIndexed {
		w.indexed = true
		w.palette = palette.Default()
		if cfg.Palette != "" {
			if w.palette, err = l.Palette(cfg.Palette); err != nil {
				return nil, err
			}
		}
		if cfg.ShirtColor != 0 {
			w.palette = palette.Tint(w.palette, cfg.ShirtColor, ShirtDark, ShirtMid, ShirtLight)
		}
	}

	params := cfg.Params
	tw, _ := tileset.FrameSize()
	params.ScreenWidth = lvl.Width * tw
	if lvl.GroundY > 0 {
		params.GroundY = lvl.GroundY
	}
	if w.hero, err = avatar.Spawn(sprite, params); err != nil {
		return nil, err
	}

	w.log.Info("world ready",
		zap.String("level", lvl.Name),
		zap.Int("props", len(w.props)),
		zap.Stringer("mode", sprite.Mode()))
	return w, nil
}

// Hero returns the avatar.
func (w *World) Hero() *avatar.Avatar {
	return w.hero
}

// Level returns the loaded level.
func (w *World) Level() *tilemap.Level {
	return w.level
}

// Ticks returns the number of updates so far.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// SetOverlay toggles the debug overlay.
func (w *World) SetOverlay(on bool) {
	w.overlay = on
}

// Overlay reports whether the debug overlay is drawn.
func (w *World) Overlay() bool {
	return w.overlay
}

// Update advances props and the avatar by one tick.
func (w *World) Update(in input.Snapshot) avatar.Event {
	for i := range w.props {
		w.props[i].anim.Tick()
	}
	w.ticks++
	return w.hero.Update(in)
}

// Render draws the tilemap, then props, then the avatar, then the overlay.
// The scene palette is reactivated first so the avatar's palette never
// leaks into the next frame's tiles.
func (w *World) Render(sink blit.Sink) error {
	sink.SetPalette(w.scene)
	if err := tilemap.RenderLevel(sink, w.tileset, w.level); err != nil {
		return err
	}

	for _, p := range w.props {
		if err := blit.Draw(sink, p.anim.Atlas(), p.anim.Frame(), p.x, p.y); err != nil {
			return fmt.Errorf("prop at (%d,%d): %w", p.x, p.y, err)
		}
	}

	if err := w.drawHero(sink); err != nil {
		return err
	}

	if w.overlay {
		tw, th := w.tileset.FrameSize()
		debug.DrawGrid(sink, tw, th, debug.GridColor)
		debug.DrawHLine(sink, w.hero.Params().GroundY, debug.GroundColor)
		debug.DrawBox(sink, w.HeroBounds(), debug.BoxColor)
	}
	return nil
}

// HeroBounds returns the avatar's on-screen rectangle.
func (w *World) HeroBounds() atlas.Rect {
	fw, fh := w.hero.Sprite().FrameSize()
	return atlas.Rect{X: w.hero.X, Y: w.hero.Y, W: fw, H: fh}
}

// DrawPortrait draws the avatar's idle frame enlarged by scale and centered
// on the sink.
func (w *World) DrawPortrait(sink blit.Sink, scale int) error {
	sprite := w.hero.Sprite()
	fw, fh := sprite.FrameSize()
	sw, sh := sink.Size()
	dw, dh := fw*scale, fh*scale
	x, y := blit.Centered(sw, sh, dw, dh)

	opts := []blit.Option{blit.WithSize(dw, dh)}
	if w.hero.Facing < 0 {
		opts = append(opts, blit.Mirrored())
	}
	if w.indexed {
		return blit.DrawWithPalette(sink, w.palette, sprite, 0, x, y, opts...)
	}
	return blit.Draw(sink, sprite, 0, x, y, opts...)
}

func (w *World) drawHero(sink blit.Sink) error {
	if w.indexed {
		return w.hero.DrawWithPalette(sink, w.palette)
	}
	return w.hero.Draw(sink)
}
