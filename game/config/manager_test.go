package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/game2048/game/engine"
)

func createValidConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Rows:        4,
		Columns:     4,
		WinningTile: 2048,
		Palette:     "ylorbr",
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func writeRawFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", filename, err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		config := createValidConfig()
		config.Name = "classic"
		writeConfigFile(t, dir, "classic", config)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "classic" {
			t.Errorf("Expected classic default, got %s", manager.GetDefault().Name)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		if _, err := NewManager("/non/existent/path"); err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("missing default config", func(t *testing.T) {
		dir := t.TempDir()
		config := createValidConfig()
		config.Name = "wide"
		config.Columns = 6
		writeConfigFile(t, dir, "wide", config)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "wide" {
			t.Errorf("Expected first config as default, got %s", manager.GetDefault().Name)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		def := manager.GetDefault()
		if def.Rows != engine.DefaultRows || def.Columns != engine.DefaultColumns {
			t.Errorf("Expected built-in default, got %dx%d", def.Rows, def.Columns)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	big := createValidConfig()
	big.Name = "big"
	big.Rows, big.Columns = 5, 5
	writeConfigFile(t, dir, "big", big)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("big")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Rows != 5 || config.Columns != 5 {
			t.Errorf("Expected 5x5, got %dx%d", config.Rows, config.Columns)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("big.json")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "big" {
			t.Errorf("Expected big, got %s", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		first, _ := manager.LoadConfig("big")
		second, _ := manager.LoadConfig("big")
		if first != second {
			t.Error("Expected cached config to be returned")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		if _, err := manager.LoadConfig("nope"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		writeRawFile(t, dir, "flat.json", `{"name": "flat", "rows": 0, "columns": 4}`)
		if _, err := manager.LoadConfig("flat"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("file limits beyond the engine rules", func(t *testing.T) {
		writeRawFile(t, dir, "unnamed.json", `{"rows": 4, "columns": 4}`)
		writeRawFile(t, dir, "giant.json", `{"name": "giant", "rows": 20, "columns": 20}`)
		for _, name := range []string{"unnamed", "giant"} {
			_, err := manager.LoadConfig(name)
			if !errors.Is(err, engine.ErrInvalidConfig) {
				t.Errorf("%s: expected engine.ErrInvalidConfig in chain, got %v", name, err)
			}
		}
	})

	t.Run("load unknown palette", func(t *testing.T) {
		writeRawFile(t, dir, "neon.json", `{"name": "neon", "rows": 4, "columns": 4, "palette": "neon"}`)
		if _, err := manager.LoadConfig("neon"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		writeRawFile(t, dir, "broken.json", `{"name": `)
		if _, err := manager.LoadConfig("broken"); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}

func TestManager_LoadHCL(t *testing.T) {
	dir := t.TempDir()
	writeRawFile(t, dir, "slide.hcl", `
name           = "slide"
description    = "Merging switched off"
rows           = 3
columns        = 5
merge_disabled = true
palette        = "mono"
`)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config, err := manager.LoadConfig("slide")
	if err != nil {
		t.Fatalf("Failed to load HCL config: %v", err)
	}
	if config.Rows != 3 || config.Columns != 5 || !config.MergeDisabled || config.Palette != "mono" {
		t.Errorf("Unexpected HCL config: %+v", config)
	}
	if config.Target() != engine.DefaultWinningTile {
		t.Errorf("Expected default target, got %d", config.Target())
	}

	t.Run("missing required attribute", func(t *testing.T) {
		writeRawFile(t, dir, "partial.hcl", `name = "partial"`)
		if _, err := manager.LoadConfig("partial.hcl"); err == nil {
			t.Error("Expected error for HCL missing rows and columns")
		}
	})
}

func TestManager_GetDefault(t *testing.T) {
	dir := t.TempDir()
	config := createValidConfig()
	config.Name = "classic"
	writeConfigFile(t, dir, "classic", config)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	other := createValidConfig()
	other.Name = "tiny"
	other.Rows, other.Columns = 2, 2
	writeConfigFile(t, dir, "tiny", other)

	if err := manager.SetDefault("tiny"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if manager.GetDefault().Name != "tiny" {
		t.Errorf("Expected tiny default, got %s", manager.GetDefault().Name)
	}
	if err := manager.SetDefault("missing"); err == nil {
		t.Error("Expected error setting unknown default")
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())
	writeRawFile(t, dir, "slide.hcl", "name = \"slide\"\nrows = 4\ncolumns = 4\nmerge_disabled = true\n")
	writeRawFile(t, dir, "broken.json", `{`)
	writeRawFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d", len(configs))
	}
	if configs[0].ConfigID != "classic" || configs[1].ConfigID != "slide" {
		t.Errorf("Unexpected order: %s, %s", configs[0].ConfigID, configs[1].ConfigID)
	}
	if !configs[1].MergeDisabled || configs[1].Filename != "slide.hcl" {
		t.Errorf("Unexpected slide info: %+v", configs[1])
	}
	if configs[1].Palette != "ylorbr" || configs[1].WinningTile != 2048 {
		t.Errorf("Expected defaults filled in, got %+v", configs[1])
	}
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	config := createValidConfig()
	config.Name = "classic"
	writeConfigFile(t, dir, "classic", config)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config.Description = "Updated"
	writeConfigFile(t, dir, "classic", config)

	if got, _ := manager.LoadConfig("classic"); got.Description == "Updated" {
		t.Error("Expected cached config before refresh")
	}
	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}
	if got, _ := manager.LoadConfig("classic"); got.Description != "Updated" {
		t.Errorf("Expected reloaded config, got %q", got.Description)
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("valid config", func(t *testing.T) {
		config := createValidConfig()
		config.Name = "saved"
		if err := manager.SaveConfig("saved", config); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
			t.Errorf("Expected saved.json on disk: %v", err)
		}
	})

	t.Run("invalid config - missing name", func(t *testing.T) {
		config := createValidConfig()
		config.Name = ""
		if err := manager.SaveConfig("unnamed", config); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("invalid config - grid size", func(t *testing.T) {
		config := createValidConfig()
		config.Rows = MaxGridSize + 1
		if err := manager.SaveConfig("huge", config); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		if err := manager.SaveConfig("../escape", createValidConfig()); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("classic"); err != nil {
				t.Errorf("Concurrent load failed: %v", err)
			}
			manager.GetDefault()
			if _, err := manager.ListConfigs(); err != nil {
				t.Errorf("Concurrent list failed: %v", err)
			}
		}()
	}
	wg.Wait()
}
