// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds all game settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Avatar  AvatarConfig  `yaml:"avatar"`
	Audio   AudioConfig   `yaml:"audio"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

// DisplayConfig holds the emulated screen and the host window settings.
type DisplayConfig struct {
	Title        string `yaml:"title"`
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	FPS          int    `yaml:"fps"`
	Scale        int    `yaml:"scale"` // window size = screen size * scale
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        bool   `yaml:"vsync"`
}

// AvatarConfig holds the player sprite and its physics tuning.
type AvatarConfig struct {
	Sprite       string `yaml:"sprite"`
	Palette      string `yaml:"palette"`     // used when the sprite is indexed
	ShirtColor   uint16 `yaml:"shirt_color"` // RGB565 tint for slots b/c/d, 0 = none
	Speed        int    `yaml:"speed"`
	JumpVelocity int    `yaml:"jump_velocity"`
	Gravity      int    `yaml:"gravity"`
	JumpFrame    int    `yaml:"jump_frame"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
	JumpSound    string  `yaml:"jump_sound"` // optional WAV replacing the synthesized blip
	LandSound    string  `yaml:"land_sound"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	Dir   string `yaml:"dir"` // overrides embedded assets when set
	Level string `yaml:"level"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer aids.
type DebugConfig struct {
	Overlay         bool    `yaml:"overlay"`
	ShowFPS         bool    `yaml:"show_fps"`
	ScreenshotDir   string  `yaml:"screenshot_dir"`
	ScreenshotScale int     `yaml:"screenshot_scale"`
	PulsePeriod     float32 `yaml:"pulse_period"` // seconds, pause screen background
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Title:        "PocketSprite",
			ScreenWidth:  80,
			ScreenHeight: 64,
			FPS:          32,
			Scale:        8,
			Fullscreen:   false,
			VSync:        true,
		},
		Avatar: AvatarConfig{
			Sprite:       "avatar.tbl",
			Palette:      "hero.yaml",
			Speed:        2,
			JumpVelocity: -5,
			Gravity:      1,
			JumpFrame:    3,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.6,
			Muted:        false,
		},
		Assets: AssetsConfig{
			Level: "level.yaml",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			ScreenshotDir:   "screenshots",
			ScreenshotScale: 4,
			PulsePeriod:     2,
		},
	}
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalid, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.Display.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Display.FPS)
	case c.Display.Scale <= 0:
		return fmt.Errorf("%w: scale %d", ErrInvalid, c.Display.Scale)
	case c.Avatar.Sprite == "":
		return fmt.Errorf("%w: avatar sprite not set", ErrInvalid)
	case c.Avatar.Gravity <= 0:
		return fmt.Errorf("%w: gravity %d must pull down", ErrInvalid, c.Avatar.Gravity)
	case c.Avatar.JumpVelocity >= 0:
		return fmt.Errorf("%w: jump velocity %d must point up", ErrInvalid, c.Avatar.JumpVelocity)
	case c.Assets.Level == "":
		return fmt.Errorf("%w: level not set", ErrInvalid)
	case c.Debug.ScreenshotScale <= 0:
		return fmt.Errorf("%w: screenshot scale %d", ErrInvalid, c.Debug.ScreenshotScale)
	}
	return nil
}

// WindowSize returns the initial window size in pixels.
func (c *Config) WindowSize() (w, h int) {
	return c.Display.ScreenWidth * c.Display.Scale, c.Display.ScreenHeight * c.Display.Scale
}
