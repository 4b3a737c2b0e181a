package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Grid queries
	Row(i int) ([]int, error)
	Column(j int) ([]int, error)
	Snapshot() [][]int
	Dimensions() (rows, columns int)

	// Terminal and win checks
	HasWon() bool
	IsFull() bool
	IsGameOver() bool
	CanMove() bool

	// Transitions
	Shift(dir Direction) (bool, error)
	SpawnTile() (Location, error)
	Reset() Location

	// State
	GetState() *GameState
	GetConfig() *GameConfig

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface. It is not safe for concurrent use;
// the holder serializes calls.
type GameEngine struct {
	config  *GameConfig
	random  RandomSource
	grid    [][]int
	won     bool
	over    bool
	moves   int
	history []MoveHistoryEntry

	// lastMerges is the number of pairs merged by the most recent Shift
	lastMerges int
	// lastSpawn is only echoed back in GetState for renderers
	lastSpawn *Location
}

// Option configures a GameEngine
type Option func(*GameEngine)

// WithRandomSource sets the source used to choose spawn locations
func WithRandomSource(r RandomSource) Option {
	return func(e *GameEngine) {
		if r != nil {
			e.random = r
		}
	}
}

// NewEngine creates a new game engine with the provided configuration.
// The grid starts with a single spawned tile.
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is required", ErrInvalidConfig)
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		random: globalRandom{},
	}
	for _, opt := range opts {
		opt(engine)
	}

	engine.Reset()
	return engine, nil
}

// NewEngineWithDefaults creates a 4x4 engine with the classic rules
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	engine, err := NewEngine(DefaultConfig(), opts...)
	if err != nil {
		// DefaultConfig always validates
		panic(err)
	}
	return engine
}

// Reset clears the grid, spawns the opening tile and returns its location
func (e *GameEngine) Reset() Location {
	e.grid = blankGrid(e.config.Rows, e.config.Columns)
	e.won = false
	e.over = false
	e.moves = 0
	e.lastMerges = 0
	e.lastSpawn = nil
	e.history = []MoveHistoryEntry{}

	loc, _ := e.SpawnTile() // a fresh grid always has room
	return loc
}

// Dimensions returns the fixed grid size
func (e *GameEngine) Dimensions() (int, int) {
	return e.config.Rows, e.config.Columns
}

// Row returns a copy of row i
func (e *GameEngine) Row(i int) ([]int, error) {
	if i < 0 || i >= e.config.Rows {
		return nil, fmt.Errorf("%w: row %d", ErrOutOfBounds, i)
	}
	out := make([]int, e.config.Columns)
	copy(out, e.grid[i])
	return out, nil
}

// Column returns column j read top to bottom
func (e *GameEngine) Column(j int) ([]int, error) {
	if j < 0 || j >= e.config.Columns {
		return nil, fmt.Errorf("%w: column %d", ErrOutOfBounds, j)
	}
	out := make([]int, e.config.Rows)
	for i := range e.grid {
		out[i] = e.grid[i][j]
	}
	return out, nil
}

// Snapshot returns a deep copy of the grid
func (e *GameEngine) Snapshot() [][]int {
	return copyGrid(e.grid)
}

// HasWon reports whether the winning tile has appeared at any point since the last reset
func (e *GameEngine) HasWon() bool {
	return e.won || containsValue(e.grid, e.config.Target())
}

// IsFull reports whether no cell is empty
func (e *GameEngine) IsFull() bool {
	return len(emptyCells(e.grid)) == 0
}

// IsGameOver reports whether a spawn found no room, or no shift can change the grid
func (e *GameEngine) IsGameOver() bool {
	if e.over {
		return true
	}
	return e.IsFull() && !e.CanMove()
}

// CanMove reports whether at least one direction would change the grid
func (e *GameEngine) CanMove() bool {
	if !e.IsFull() {
		return true
	}
	if e.config.MergeDisabled {
		return false
	}
	return hasAdjacentPair(e.grid)
}

// Move applies one full input step: shift, then spawn.
// It records the step in history and returns whether the shift changed the grid
// and where the new tile landed. ErrGridFull is returned when no tile could be placed.
func (e *GameEngine) Move(dir Direction) (bool, *Location, error) {
	moved, err := e.Shift(dir)
	if err != nil {
		return false, nil, err
	}

	var spawned *Location
	loc, spawnErr := e.SpawnTile()
	if spawnErr == nil {
		spawned = &loc
	}

	e.addMoveToHistory(dir, moved, spawned)
	return moved, spawned, spawnErr
}

// GetState returns a fresh read-only view of the engine
func (e *GameEngine) GetState() *GameState {
	return &GameState{
		Grid:       e.Snapshot(),
		Rows:       e.config.Rows,
		Columns:    e.config.Columns,
		Won:        e.HasWon(),
		GameOver:   e.IsGameOver(),
		Full:       e.IsFull(),
		MaxTile:    MaxTile(e.grid),
		Moves:      e.moves,
		LastSpawn:  e.lastSpawn,
		ConfigName: e.config.Name,

		MergeDisabled: e.config.MergeDisabled,
	}
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// LastMerges returns the number of merged pairs produced by the latest shift
func (e *GameEngine) LastMerges() int {
	return e.lastMerges
}

// GetMoveHistory returns a copy of the move history since the last reset
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return append([]MoveHistoryEntry(nil), e.history...)
}

// GetLastMove returns a copy of the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1]
	return &last
}

// Clone returns an independent copy sharing config and random source.
// Strategies use it to look ahead without touching the live game.
func (e *GameEngine) Clone() *GameEngine {
	c := *e
	c.grid = copyGrid(e.grid)
	c.history = append([]MoveHistoryEntry(nil), e.history...)
	return &c
}

func (e *GameEngine) addMoveToHistory(dir Direction, moved bool, spawned *Location) {
	e.moves++
	e.history = append(e.history, MoveHistoryEntry{
		Direction:  dir.String(),
		Moved:      moved,
		Spawned:    spawned,
		Merges:     e.lastMerges,
		Timestamp:  time.Now().Unix(),
		MoveNumber: e.moves,
	})
}
