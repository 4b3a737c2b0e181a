package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is a move request. It is never stored on the grid.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

const (
	// Validation constants
	MinGridSize = 1

	DefaultRows         = 4
	DefaultColumns      = 4
	DefaultWinningTile  = 2048
	SpawnValue          = 2
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

var (
	ErrGridFull         = errors.New("no empty cell")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrOutOfBounds      = errors.New("index out of bounds")
)

// Directions lists every direction in a stable order
var Directions = []Direction{Left, Right, Up, Down}

// String returns the lowercase name used on the wire
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four cardinal directions
func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

// ParseDirection maps raw input (API strings, browser key names, vi and WASD keys)
// to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l", "arrowleft", "a", "h":
		return Left, nil
	case "right", "r", "arrowright", "d":
		return Right, nil
	case "up", "u", "arrowup", "w", "k":
		return Up, nil
	case "down", "arrowdown", "s", "j":
		return Down, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Location identifies a cell
type Location struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// String returns "(row,column)"
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Column)
}

// GameConfig holds the rules a grid is built from. It is loaded from JSON or HCL files.
type GameConfig struct {
	Name          string `json:"name" hcl:"name"`
	Description   string `json:"description" hcl:"description,optional"`
	Rows          int    `json:"rows" hcl:"rows"`
	Columns       int    `json:"columns" hcl:"columns"`
	MergeDisabled bool   `json:"merge_disabled,omitempty" hcl:"merge_disabled,optional"`
	WinningTile   int    `json:"winning_tile,omitempty" hcl:"winning_tile,optional"`
	Palette       string `json:"palette,omitempty" hcl:"palette,optional"`
}

// GameState is the read-only view handed to renderers and transports
type GameState struct {
	Grid       [][]int   `json:"grid"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	Won        bool      `json:"won"`
	GameOver   bool      `json:"game_over"`
	Full       bool      `json:"full"`
	MaxTile    int       `json:"max_tile"`
	Moves      int       `json:"moves"`
	LastSpawn  *Location `json:"last_spawn,omitempty"`
	ConfigName string    `json:"config_name"`

	// MergeDisabled lets clients judge which shifts can change the grid
	MergeDisabled bool `json:"merge_disabled,omitempty"`
}

// MoveHistoryEntry records one processed input
type MoveHistoryEntry struct {
	Direction  string    `json:"direction"`
	Moved      bool      `json:"moved"`
	Spawned    *Location `json:"spawned,omitempty"`
	Merges     int       `json:"merges"`
	Timestamp  int64     `json:"timestamp"`
	MoveNumber int       `json:"move_number"`
}
