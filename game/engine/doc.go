// Package engine provides the grid-state transition engine for 2048.
//
// The engine package implements:
//   - The single-pass line merge (MergeLeft, MergeRight, MergeLine)
//   - Whole-grid shifts in the four cardinal directions
//   - Tile spawning through an injectable RandomSource
//   - Win (sticky) and terminal checks
//   - Configuration validation
//
// Core Types:
//
// The Engine interface defines the main contract, implemented by GameEngine.
// GameConfig fixes the grid dimensions and rules at construction, and
// GameState is the read-only view handed to renderers.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	dir, _ := engine.ParseDirection("ArrowLeft")
//	if _, err := eng.Shift(dir); err != nil {
//		log.Fatal(err)
//	}
//	if _, err := eng.SpawnTile(); errors.Is(err, engine.ErrGridFull) {
//		// game over
//	}
//
// Game Rules:
//
// Each input shifts every line toward one edge. Adjacent equal tiles merge
// once per move into their sum. A 2 then appears in a random empty cell.
// Reaching 2048 sets a win flag but play continues; the game ends when a
// tile can no longer be placed.
package engine
