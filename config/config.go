// Package config holds the runtime settings of spritewalk.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of tunables. The zero value is not usable; start
// from Default.
type Config struct {
	Title        string
	ScreenWidth  int
	ScreenHeight int
	TPS          int

	// SheetPath overrides the embedded player sprite sheet.
	SheetPath string

	Velocity     int
	ScaleRate    int
	FrameTime    time.Duration
	PlayerWidth  int
	PlayerHeight int

	HUD   bool
	Debug bool

	LogLevel string
	LogFile  string
}

// Default returns an 800x600 window at 64 TPS with a 32x32 player.
func Default() Config {
	return Config{
		Title:        "game tutorial",
		ScreenWidth:  800,
		ScreenHeight: 600,
		TPS:          64,
		Velocity:     2,
		ScaleRate:    5,
		FrameTime:    200 * time.Millisecond,
		PlayerWidth:  32,
		PlayerHeight: 32,
		LogLevel:     "info",
	}
}

// RegisterFlags binds every field to a flag on fs, using the current values
// as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Title, "title", c.Title, "window title")
	fs.IntVar(&c.ScreenWidth, "width", c.ScreenWidth, "window width in pixels")
	fs.IntVar(&c.ScreenHeight, "height", c.ScreenHeight, "window height in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "game ticks per second")
	fs.StringVar(&c.SheetPath, "sheet", c.SheetPath, "path to a player sprite sheet PNG (default: embedded)")
	fs.IntVar(&c.Velocity, "velocity", c.Velocity, "pixels moved per walk step")
	fs.IntVar(&c.ScaleRate, "scale-rate", c.ScaleRate, "pixels added or removed per scale step")
	fs.DurationVar(&c.FrameTime, "frame-time", c.FrameTime, "minimum time between animation frames")
	fs.IntVar(&c.PlayerWidth, "player-width", c.PlayerWidth, "initial player width")
	fs.IntVar(&c.PlayerHeight, "player-height", c.PlayerHeight, "initial player height")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the status line")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable the Dear ImGui debug overlay (F1)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "also write logs to this rolling file")
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, name, v))
		}
	}
	nonNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalid, name, v))
		}
	}

	positive("width", c.ScreenWidth)
	positive("height", c.ScreenHeight)
	positive("tps", c.TPS)
	nonNegative("velocity", c.Velocity)
	nonNegative("scale-rate", c.ScaleRate)
	nonNegative("player-width", c.PlayerWidth)
	nonNegative("player-height", c.PlayerHeight)
	if c.FrameTime <= 0 {
		errs = append(errs, fmt.Errorf("%w: frame-time must be positive, got %s", ErrInvalid, c.FrameTime))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("%w: log-level: %w", ErrInvalid, err)
	}
	return lvl, nil
}

// FrameTimeMillis is FrameTime in the millisecond ticks the game counts in.
func (c Config) FrameTimeMillis() uint32 {
	return uint32(c.FrameTime / time.Millisecond)
}
