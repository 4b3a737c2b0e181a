package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*GameConfig)
		expectError string
	}{
		{"valid default", func(c *GameConfig) {}, ""},
		{"single cell grid", func(c *GameConfig) { c.Rows, c.Columns = 1, 1 }, ""},
		{"non-square grid", func(c *GameConfig) { c.Rows, c.Columns = 3, 6 }, ""},
		{"missing name", func(c *GameConfig) { c.Name = "" }, ""},
		{"zero rows", func(c *GameConfig) { c.Rows = 0 }, "rows must be positive"},
		{"negative columns", func(c *GameConfig) { c.Columns = -3 }, "columns must be positive"},
		{"large grid", func(c *GameConfig) { c.Rows, c.Columns = 20, 20 }, ""},
		{"winning tile not power of two", func(c *GameConfig) { c.WinningTile = 1000 }, "winning_tile"},
		{"winning tile equals spawn", func(c *GameConfig) { c.WinningTile = 2 }, "winning_tile"},
		{"custom winning tile", func(c *GameConfig) { c.WinningTile = 512 }, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultConfig()
			test.modify(config)

			err := ValidateGameConfig(config)
			if test.expectError == "" {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", test.expectError)
			}
			if !strings.Contains(err.Error(), test.expectError) {
				t.Errorf("Expected error containing %q, got: %v", test.expectError, err)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if err := ValidateGameConfig(config); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
	if config.Rows != 4 || config.Columns != 4 {
		t.Errorf("Expected 4x4, got %dx%d", config.Rows, config.Columns)
	}
	if config.Target() != 2048 {
		t.Errorf("Expected target 2048, got %d", config.Target())
	}
	if config.MergeDisabled {
		t.Error("Default config should merge")
	}
}

func TestLoadGameConfig(t *testing.T) {
	tempDir := t.TempDir()

	valid := `{"name": "wide", "description": "Wide board", "rows": 3, "columns": 6}`
	validPath := filepath.Join(tempDir, "wide.json")
	if err := os.WriteFile(validPath, []byte(valid), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadGameConfig(validPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Name != "wide" || config.Rows != 3 || config.Columns != 6 {
		t.Errorf("Unexpected config: %+v", config)
	}

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(tempDir, "broken.json")
		os.WriteFile(path, []byte(`{"name": `), 0644)
		if _, err := LoadGameConfig(path); err == nil {
			t.Error("Expected error for broken JSON")
		}
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		path := filepath.Join(tempDir, "flat.json")
		os.WriteFile(path, []byte(`{"name": "flat", "rows": 0, "columns": 4}`), 0644)
		if _, err := LoadGameConfig(path); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadGameConfig(filepath.Join(tempDir, "nope.json")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("CONFIG_DIR override", func(t *testing.T) {
		t.Setenv("CONFIG_DIR", tempDir)
		config, err := LoadGameConfig("configs/wide.json")
		if err != nil {
			t.Fatalf("Expected CONFIG_DIR to resolve configs/ prefix: %v", err)
		}
		if config.Name != "wide" {
			t.Errorf("Expected wide, got %s", config.Name)
		}
	})
}
