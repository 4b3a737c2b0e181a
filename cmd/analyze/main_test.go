package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/game2048/game/engine"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(context.Background(), append([]string{"analyze"}, args...))
	return out.String(), err
}

func TestStrategies(t *testing.T) {
	cfg := &engine.GameConfig{Name: "row", Rows: 1, Columns: 4, WinningTile: 16}
	eng, err := engine.NewEngine(cfg, engine.WithRandomSource(engine.NewRandomSource(3)))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	for _, name := range []string{"random", "greedy", "corner"} {
		t.Run(name, func(t *testing.T) {
			strategy, err := newStrategy(name, 1)
			if err != nil {
				t.Fatalf("newStrategy failed: %v", err)
			}
			if strategy.Name() != name {
				t.Errorf("Expected name %s, got %s", name, strategy.Name())
			}

			before := eng.Snapshot()
			dir := strategy.Next(eng)
			if !dir.Valid() {
				t.Errorf("Invalid direction %d", dir)
			}
			if dir == engine.Up || dir == engine.Down {
				t.Errorf("Vertical shifts cannot move a single row, got %s", dir)
			}
			if got := eng.Snapshot(); !equalGrids(before, got) {
				t.Errorf("Strategy mutated the live game: %v -> %v", before, got)
			}
		})
	}

	if _, err := newStrategy("minimax", 1); err == nil {
		t.Error("Expected error for unknown strategy")
	}
}

func equalGrids(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func TestGreedyPrefersMerges(t *testing.T) {
	// 1x3 grid: after the opening tile the greedy pick must be the merging shift
	cfg := &engine.GameConfig{Name: "trio", Rows: 1, Columns: 3, WinningTile: 8}
	eng, err := engine.NewEngine(cfg, engine.WithRandomSource(engine.NewRandomSource(7)))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	for i := 0; i < 20 && !eng.IsGameOver(); i++ {
		dir := greedyStrategy{}.Next(eng)
		clone := eng.Clone()
		clone.Shift(dir)
		chosen := clone.LastMerges()

		for _, other := range engine.Directions {
			c := eng.Clone()
			if moved, _ := c.Shift(other); moved && c.LastMerges() > chosen {
				t.Fatalf("Greedy picked %s (%d merges) over %s (%d merges) on %v", dir, chosen, other, c.LastMerges(), eng.Snapshot())
			}
		}
		eng.Move(dir)
	}
}

func TestPlayGame(t *testing.T) {
	pair := &engine.GameConfig{Name: "pair", Rows: 1, Columns: 2, WinningTile: 4}

	result, err := playGame(pair, "corner", 1, 100)
	if err != nil {
		t.Fatalf("playGame failed: %v", err)
	}
	// [2,_] or [_,2] -> [2,2] -> [4,2]
	if !result.Won || result.MaxTile != 4 || result.Abandoned {
		t.Errorf("Unexpected result: %+v", result)
	}
	if result.Moves > 3 {
		t.Errorf("Expected the pair game to end within 3 moves, got %d", result.Moves)
	}

	t.Run("move limit", func(t *testing.T) {
		result, err := playGame(engine.DefaultConfig(), "corner", 1, 5)
		if err != nil {
			t.Fatalf("playGame failed: %v", err)
		}
		if !result.Abandoned || result.Moves != 5 {
			t.Errorf("Expected abandonment after 5 moves, got %+v", result)
		}
	})

	t.Run("deterministic per seed", func(t *testing.T) {
		a, _ := playGame(engine.DefaultConfig(), "random", 42, 500)
		b, _ := playGame(engine.DefaultConfig(), "random", 42, 500)
		if a != b {
			t.Errorf("Same seed produced different games: %+v vs %+v", a, b)
		}
	})
}

func TestSimulate(t *testing.T) {
	pair := &engine.GameConfig{Name: "pair", Rows: 1, Columns: 2, WinningTile: 4}

	summary, err := simulate(context.Background(), pair, "greedy", 8, 1, 100, 3)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if summary.Games != 8 || summary.Wins != 8 || summary.BestTile != 4 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if summary.WinRate() != 1 {
		t.Errorf("Expected win rate 1, got %f", summary.WinRate())
	}
	if summary.TileCounts[4] != 8 {
		t.Errorf("Expected every game to end on 4, got %v", summary.TileCounts)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := simulate(ctx, pair, "greedy", 4, 1, 100, 1); err == nil {
		t.Error("Expected error from cancelled context")
	}
}

func TestSummary(t *testing.T) {
	s := summarize("classic", "corner", []GameResult{
		{Won: true, MaxTile: 2048, Moves: 900},
		{MaxTile: 1024, Moves: 700},
		{MaxTile: 1024, Moves: 500, Abandoned: true},
		{MaxTile: 512, Moves: 300},
	})

	if s.Wins != 1 || s.Abandoned != 1 || s.BestTile != 2048 {
		t.Errorf("Unexpected summary: %+v", s)
	}
	if s.AverageMoves() != 600 {
		t.Errorf("Expected average 600, got %f", s.AverageMoves())
	}
	if s.TileCounts[1024] != 2 {
		t.Errorf("Expected two games ending on 1024, got %d", s.TileCounts[1024])
	}

	var out bytes.Buffer
	printSummary(&out, 2048, s)
	for _, want := range []string{"classic (corner, 4 games)", "Win rate (2048): 25.0% (1/4)", "Best tile: 2048", "hit the move limit"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in:\n%s", want, out.String())
		}
	}

	if (&Summary{}).WinRate() != 0 || (&Summary{}).AverageMoves() != 0 {
		t.Error("Empty summary should report zeros")
	}
}

func TestValidateConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		file      string
		content   string
		valid     bool
		errorText string
		warnText  string
	}{
		{
			name:    "classic json",
			file:    "classic.json",
			content: `{"name": "classic", "rows": 4, "columns": 4}`,
			valid:   true,
		},
		{
			name:    "hcl",
			file:    "tiny.hcl",
			content: "name = \"tiny\"\nrows = 3\ncolumns = 3\nwinning_tile = 256\n",
			valid:   true,
		},
		{
			name:      "broken json",
			file:      "broken.json",
			content:   `{"name": `,
			errorText: "failed to parse config",
		},
		{
			name:      "bad dimensions",
			file:      "flat.json",
			content:   `{"name": "flat", "rows": 0, "columns": 4}`,
			errorText: "invalid configuration",
		},
		{
			name:      "unknown palette",
			file:      "neon.json",
			content:   `{"name": "neon", "rows": 4, "columns": 4, "palette": "neon"}`,
			errorText: "unknown palette",
		},
		{
			name:      "unreachable target",
			file:      "cramped.json",
			content:   `{"name": "cramped", "rows": 2, "columns": 2, "winning_tile": 32}`,
			errorText: "unreachable",
		},
		{
			name:     "merge disabled",
			file:     "slide.json",
			content:  `{"name": "slide", "rows": 4, "columns": 4, "merge_disabled": true}`,
			valid:    true,
			warnText: "merging is disabled",
		},
		{
			name:     "name mismatch",
			file:     "wide.json",
			content:  `{"name": "Wide board", "rows": 3, "columns": 6}`,
			valid:    true,
			warnText: "differs from file name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, tt.file, tt.content)
			r := validateConfig(path)

			if r.Valid != tt.valid {
				t.Fatalf("Expected valid=%v, got %v (errors: %v)", tt.valid, r.Valid, r.Errors)
			}
			if tt.errorText != "" && !strings.Contains(strings.Join(r.Errors, "\n"), tt.errorText) {
				t.Errorf("Expected error containing %q, got %v", tt.errorText, r.Errors)
			}
			if tt.warnText != "" && !strings.Contains(strings.Join(r.Warnings, "\n"), tt.warnText) {
				t.Errorf("Expected warning containing %q, got %v", tt.warnText, r.Warnings)
			}
		})
	}

	if r := validateConfig(filepath.Join(dir, "missing.json")); r.Valid {
		t.Error("Expected missing file to be invalid")
	}
}

func TestMaxReachableTile(t *testing.T) {
	tests := []struct {
		rows, columns int
		expected      int
	}{
		{1, 1, 2},
		{1, 2, 4},
		{1, 3, 8},
		{4, 4, 65536},
	}
	for _, tt := range tests {
		if got := maxReachableTile(tt.rows, tt.columns); got != tt.expected {
			t.Errorf("%dx%d: expected %d, got %d", tt.rows, tt.columns, tt.expected, got)
		}
	}
}

func TestApp(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "pair.json", `{"name": "pair", "rows": 1, "columns": 2, "winning_tile": 4}`)
	writeConfig(t, dir, "trio.hcl", "name = \"trio\"\nrows = 1\ncolumns = 3\nwinning_tile = 8\n")

	t.Run("simulate all configs", func(t *testing.T) {
		out, err := runApp(t, "simulate", "--config-dir", dir, "--games", "4", "--strategy", "greedy")
		if err != nil {
			t.Fatalf("simulate failed: %v\n%s", err, out)
		}
		for _, want := range []string{"=== pair (greedy, 4 games) ===", "=== trio (greedy, 4 games) ===", "Win rate (4): 100.0%"} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected %q in:\n%s", want, out)
			}
		}
	})

	t.Run("simulate unknown strategy", func(t *testing.T) {
		if _, err := runApp(t, "simulate", "--config-dir", dir, "--strategy", "minimax"); err == nil {
			t.Error("Expected error for unknown strategy")
		}
	})

	t.Run("simulate unknown config", func(t *testing.T) {
		if _, err := runApp(t, "simulate", "--config-dir", dir, "--games", "1", "nope"); err == nil {
			t.Error("Expected error for unknown config")
		}
	})

	t.Run("validate directory", func(t *testing.T) {
		out, err := runApp(t, "validate", "--config-dir", dir)
		if err != nil {
			t.Fatalf("validate failed: %v\n%s", err, out)
		}
		if !strings.Contains(out, "2 files checked, 0 invalid") {
			t.Errorf("Unexpected output:\n%s", out)
		}
	})

	t.Run("validate invalid file", func(t *testing.T) {
		bad := t.TempDir()
		path := writeConfig(t, bad, "flat.json", `{"name": "flat", "rows": 0, "columns": 4}`)
		out, err := runApp(t, "validate", path)
		if err == nil {
			t.Fatalf("Expected error for invalid file:\n%s", out)
		}
		if !strings.Contains(out, "❌ flat.json") {
			t.Errorf("Unexpected output:\n%s", out)
		}
	})
}

func TestRepositoryConfigs(t *testing.T) {
	files, err := configFiles(filepath.Join("..", "..", "configs"))
	if err != nil {
		t.Fatalf("configFiles failed: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("Expected shipped configurations")
	}
	for _, file := range files {
		if r := validateConfig(file); !r.Valid {
			t.Errorf("%s is invalid: %v", r.File, r.Errors)
		}
	}
}
