// Package config provides configuration management for the 2048 server.
//
// The config package handles:
//   - Loading game configurations from JSON and HCL files
//   - Configuration validation, including the palette name
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations live in the configs directory as name.json or name.hcl.
// Each configuration defines the grid dimensions, the winning tile, whether
// merging is enabled and the palette a renderer should use:
//
//	name          = "big"
//	description   = "5x5 board"
//	rows          = 5
//	columns       = 5
//	winning_tile  = 4096
//	palette       = "classic"
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("big")
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// When no "classic" file is present the first loadable file becomes the
// default, and an empty directory falls back to engine.DefaultConfig.
package config
