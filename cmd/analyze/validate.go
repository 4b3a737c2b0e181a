package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/game2048/game/config"
	"github.com/wricardo/game2048/game/engine"
)

// ValidationResult represents the outcome of validating a single config file
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

// maxReachableTile is the largest tile a grid can build when every spawn is a 2.
// Building 2^k needs k-1 distinct tiles held at once plus two 2s, so k cells.
func maxReachableTile(rows, columns int) int {
	cells := rows * columns
	if cells >= 30 {
		return 1 << 30
	}
	return 1 << cells
}

// validateConfig loads one file through the config manager and checks that the
// board can actually be won
func validateConfig(path string) ValidationResult {
	result := ValidationResult{File: filepath.Base(path), Valid: true}

	manager, err := config.NewManager(filepath.Dir(path))
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	cfg, err := manager.LoadConfig(filepath.Base(path))
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	target := cfg.Target()
	if limit := maxReachableTile(cfg.Rows, cfg.Columns); target > limit {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("winning_tile %d is unreachable on a %dx%d grid (max %d)", target, cfg.Rows, cfg.Columns, limit))
	}
	if cfg.MergeDisabled {
		result.Warnings = append(result.Warnings, fmt.Sprintf("merging is disabled, tiles never grow past %d so the game cannot be won", engine.SpawnValue))
	}

	id := strings.TrimSuffix(result.File, filepath.Ext(result.File))
	if cfg.Name != id {
		result.Warnings = append(result.Warnings, fmt.Sprintf("name %q differs from file name %q; sessions use the file name", cfg.Name, id))
	}

	palette := cfg.Palette
	if palette == "" {
		palette = "default"
	}
	result.Info = append(result.Info,
		fmt.Sprintf("Name: %s", cfg.Name),
		fmt.Sprintf("Grid: %dx%d", cfg.Rows, cfg.Columns),
		fmt.Sprintf("Winning tile: %d", target),
		fmt.Sprintf("Palette: %s", palette),
	)
	return result
}

// configFiles lists .json and .hcl files in dir
func configFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".json", ".hcl":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func printValidation(w io.Writer, r ValidationResult) {
	if r.Valid {
		fmt.Fprintf(w, "✅ %s\n", r.File)
	} else {
		fmt.Fprintf(w, "❌ %s\n", r.File)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "   error: %s\n", e)
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "   ⚠️  %s\n", warning)
	}
	for _, info := range r.Info {
		fmt.Fprintf(w, "   ✓ %s\n", info)
	}
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer

	files := cmd.Args().Slice()
	if len(files) == 0 {
		var err error
		if files, err = configFiles(cmd.String("config-dir")); err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no configuration files found")
	}

	invalid := 0
	for _, file := range files {
		r := validateConfig(file)
		if !r.Valid {
			invalid++
		}
		printValidation(out, r)
	}

	fmt.Fprintf(out, "\n%d files checked, %d invalid\n", len(files), invalid)
	if invalid > 0 {
		return fmt.Errorf("%d invalid configuration files", invalid)
	}
	return nil
}
