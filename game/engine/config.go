package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateGameConfig checks the rules a grid can be built from. Names and size
// limits for config files are enforced by the config manager.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is required", ErrInvalidConfig)
	}

	// Validate grid size
	if config.Rows < MinGridSize {
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidConfig, config.Rows)
	}
	if config.Columns < MinGridSize {
		return fmt.Errorf("%w: columns must be positive, got %d", ErrInvalidConfig, config.Columns)
	}

	// Zero means the classic 2048 target
	if config.WinningTile != 0 && (!IsPowerOfTwo(config.WinningTile) || config.WinningTile <= SpawnValue) {
		return fmt.Errorf("%w: winning_tile must be a power of two above %d, got %d", ErrInvalidConfig, SpawnValue, config.WinningTile)
	}

	return nil
}

// DefaultConfig returns the classic 4x4 rules
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Classic 4x4 board, reach 2048",
		Rows:        DefaultRows,
		Columns:     DefaultColumns,
		WinningTile: DefaultWinningTile,
		Palette:     "ylorbr",
	}
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Target returns the tile value that flags a win; zero means 2048
func (c *GameConfig) Target() int {
	if c.WinningTile == 0 {
		return DefaultWinningTile
	}
	return c.WinningTile
}
