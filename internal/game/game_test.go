package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/pocketsprite/internal/config"
	"github.com/Faultbox/pocketsprite/internal/engine/input"
)

func newGame(t *testing.T, cfg *config.Config) *Game {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func run(t *testing.T, script string) (*Game, uint64) {
	t.Helper()
	g := newGame(t, config.Default())
	s, err := input.ParseScript(script)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	fb, err := g.RunHeadless(0, s)
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	return g, fb.Checksum()
}

func TestRunHeadless_Deterministic(t *testing.T) {
	const script = "right*10,right+a,none*20"

	g, a := run(t, script)
	_, b := run(t, script)
	if a != b {
		t.Errorf("same input, different frames: %016x vs %016x", a, b)
	}

	_, c := run(t, "left*10,left+a,none*20")
	if a == c {
		t.Error("different input rendered the same frame")
	}

	if got := g.Recording().String(); got != script {
		t.Errorf("recording = %q, want %q", got, script)
	}
	if g.World().Ticks() != 31 {
		t.Errorf("ticks = %d, want 31", g.World().Ticks())
	}
}

func TestRunHeadless_ReplayMatches(t *testing.T) {
	g, want := run(t, "right*6,a,none*4,left*12,none*8")

	replay := newGame(t, config.Default())
	fb, err := replay.RunHeadless(0, g.Recording().Script())
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if fb.Checksum() != want {
		t.Error("replaying the recording produced a different frame")
	}
}

func TestRunHeadless_NoScript(t *testing.T) {
	g := newGame(t, config.Default())
	if _, err := g.RunHeadless(5, nil); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	h := g.World().Hero()
	if h.X != 36 || h.Y != 40 {
		t.Errorf("idle hero moved to (%d,%d)", h.X, h.Y)
	}
}

func TestPause(t *testing.T) {
	g, _ := run(t, "none,menu,none")
	if g.State() != "paused" {
		t.Errorf("state = %q, want paused", g.State())
	}

	s, _ := input.ParseScript("menu,none")
	if _, err := g.RunHeadless(0, s); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if g.State() != "playing" {
		t.Errorf("state = %q, want playing", g.State())
	}
}

func TestIndexedSprite(t *testing.T) {
	cfg := config.Default()
	cfg.Avatar.Sprite = "avatar_indexed.tbl"
	cfg.Avatar.ShirtColor = 0x4439
	g := newGame(t, cfg)

	if _, err := g.RunHeadless(3, nil); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if p := g.Framebuffer().Palette(); p[13] != 0x4439 {
		t.Errorf("shirt slot = %#04x, want 0x4439", p[13])
	}
}

func TestScreenshot(t *testing.T) {
	cfg := config.Default()
	cfg.Debug.ScreenshotDir = t.TempDir()
	g := newGame(t, cfg)

	if _, err := g.RunHeadless(1, nil); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	path, err := g.Screenshot()
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if filepath.Dir(path) != cfg.Debug.ScreenshotDir || filepath.Ext(path) != ".bmp" {
		t.Errorf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot missing: %v", err)
	}
}

func TestNew_BadLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Assets.Level = "missing.yaml"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for missing level")
	}
}
