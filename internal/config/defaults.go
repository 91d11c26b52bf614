package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the built-in configuration. It mirrors
// defaults/match3.yaml and is used if the embedded file cannot be parsed.
func DefaultMatch3Config() Match3Config {
	easy := []TileTypeConfig{
		{ID: 0, Name: "ruby", Glyph: "●", Color: "red"},
		{ID: 1, Name: "emerald", Glyph: "◆", Color: "green"},
		{ID: 2, Name: "sapphire", Glyph: "■", Color: "blue"},
		{ID: 3, Name: "topaz", Glyph: "▲", Color: "yellow"},
		{ID: 4, Name: "amethyst", Glyph: "★", Color: "magenta"},
	}
	hard := append(append([]TileTypeConfig{}, easy...),
		TileTypeConfig{ID: 5, Name: "pearl", Glyph: "○", Color: "bright_white"},
		TileTypeConfig{ID: 6, Name: "amber", Glyph: "♦", Color: "orange"},
	)

	return Match3Config{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
		},
		Cascade: CascadeConfig{
			MaxIterations: 50,
		},
		Playback: PlaybackConfig{
			SwapTicks:  6,
			ClearTicks: 12,
			FallTicks:  4,
		},
		Difficulties: map[DifficultyPreset]DifficultyConfig{
			DifficultyEasy: {TilePoints: 10, TileTypes: easy},
			DifficultyHard: {TilePoints: 15, TileTypes: hard},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMatch3YAML
}
