// Package config loads the YAML game configuration: board size, cascade
// limit, playback pacing and the tile catalog of each difficulty.
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

var (
	// ErrUnknownDifficulty reports a preset name that is not configured.
	ErrUnknownDifficulty = errors.New("config: unknown difficulty")

	// ErrInvalidConfig reports a configuration that cannot produce a game.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board        BoardConfig                           `yaml:"board"`
	Cascade      CascadeConfig                         `yaml:"cascade"`
	Playback     PlaybackConfig                        `yaml:"playback"`
	Difficulties map[DifficultyPreset]DifficultyConfig `yaml:"difficulties"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CascadeConfig bounds cascade resolution.
type CascadeConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

// PlaybackConfig defines how long each resolution stage stays on screen.
type PlaybackConfig struct {
	SwapTicks  int `yaml:"swap_ticks"`
	ClearTicks int `yaml:"clear_ticks"`
	FallTicks  int `yaml:"fall_ticks"` // per row of fall distance
}

// DifficultyConfig is the tile catalog and scoring of one preset.
type DifficultyConfig struct {
	TilePoints int              `yaml:"tile_points"`
	TileTypes  []TileTypeConfig `yaml:"tile_types"`
}

// TileTypeConfig binds a tile type id to its presentation.
type TileTypeConfig struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// DifficultyPreset names a configured difficulty.
type DifficultyPreset string

const (
	DifficultyEasy DifficultyPreset = "easy"
	DifficultyHard DifficultyPreset = "hard"
)

// ParsePreset normalizes a preset name. An empty name selects easy.
func ParsePreset(name string) DifficultyPreset {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DifficultyEasy
	}
	return DifficultyPreset(name)
}

// Difficulty returns the configuration of a preset.
func (c Match3Config) Difficulty(preset DifficultyPreset) (DifficultyConfig, error) {
	d, ok := c.Difficulties[preset]
	if !ok {
		return DifficultyConfig{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, preset)
	}
	return d, nil
}

// Validate reports the first problem that would prevent a game from starting.
func (c Match3Config) Validate() error {
	if c.Board.Width < 3 || c.Board.Height < 3 {
		return fmt.Errorf("%w: board must be at least 3x3, got %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.Cascade.MaxIterations < 0 {
		return fmt.Errorf("%w: cascade.max_iterations must not be negative", ErrInvalidConfig)
	}
	if len(c.Difficulties) == 0 {
		return fmt.Errorf("%w: no difficulties defined", ErrInvalidConfig)
	}
	for preset, d := range c.Difficulties {
		if err := d.validate(); err != nil {
			return fmt.Errorf("%w: difficulty %q: %w", ErrInvalidConfig, preset, err)
		}
	}
	return nil
}

func (d DifficultyConfig) validate() error {
	if len(d.TileTypes) == 0 {
		return errors.New("tile_types is empty")
	}
	if d.TilePoints <= 0 {
		return fmt.Errorf("tile_points must be positive, got %d", d.TilePoints)
	}
	seen := make(map[int]bool, len(d.TileTypes))
	for _, tt := range d.TileTypes {
		if seen[tt.ID] {
			return fmt.Errorf("duplicate tile id %d", tt.ID)
		}
		seen[tt.ID] = true
		if utf8.RuneCountInString(tt.Glyph) != 1 {
			return fmt.Errorf("tile %d: glyph must be a single character, got %q", tt.ID, tt.Glyph)
		}
		if _, ok := core.ParseColor(tt.Color); !ok {
			return fmt.Errorf("tile %d: unknown color %q", tt.ID, tt.Color)
		}
	}
	if n := len(d.TileTypes); n < engine.MinCatalogSize {
		return fmt.Errorf("%w: %d tile types, need %d", engine.ErrCatalogTooSmall, n, engine.MinCatalogSize)
	}
	return nil
}

// GlyphRune returns the glyph as a rune.
func (t TileTypeConfig) GlyphRune() rune {
	r, _ := utf8.DecodeRuneInString(t.Glyph)
	return r
}

// ColorValue returns the parsed color, or the default color if unknown.
func (t TileTypeConfig) ColorValue() core.Color {
	c, _ := core.ParseColor(t.Color)
	return c
}

// withDefaults fills zero pacing values.
func (c Match3Config) withDefaults() Match3Config {
	def := DefaultMatch3Config()
	if c.Playback.SwapTicks == 0 {
		c.Playback.SwapTicks = def.Playback.SwapTicks
	}
	if c.Playback.ClearTicks == 0 {
		c.Playback.ClearTicks = def.Playback.ClearTicks
	}
	if c.Playback.FallTicks == 0 {
		c.Playback.FallTicks = def.Playback.FallTicks
	}
	if c.Cascade.MaxIterations == 0 {
		c.Cascade.MaxIterations = def.Cascade.MaxIterations
	}
	return c
}
