package service

import (
	"time"

	"github.com/wricardo/game2048/game/engine"
)

// Event types emitted by moves
const (
	EventMove             = "move"
	EventMerge            = "merge"
	EventSpawn            = "spawn"
	EventWon              = "won"
	EventGameOver         = "game_over"
	EventReset            = "reset"
	EventInvalidDirection = "invalid_direction"
)

// Stop reason codes for bulk moves
const (
	StopGameOver         = "game_over"
	StopInvalidDirection = "invalid_direction"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool              `json:"success"`
	Moved     bool              `json:"moved"`
	Merges    int               `json:"merges"`
	Spawned   *engine.Location  `json:"spawned,omitempty"`
	Won       bool              `json:"won"`
	GameOver  bool              `json:"game_over"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
	Step      *StepInfo         `json:"step,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // game_over|invalid_direction
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	StartMaxTile int `json:"start_max_tile"`
	EndMaxTile   int `json:"end_max_tile"`
	SumDelta     int `json:"sum_delta"`

	Steps []StepInfo `json:"steps,omitempty"`

	Won      bool   `json:"won"`
	GameOver bool   `json:"game_over"`
	Message  string `json:"message,omitempty"`
}

// StepInfo is a compact record for each processed input
type StepInfo struct {
	Idx        int              `json:"idx"`
	Dir        string           `json:"dir"`
	Moved      bool             `json:"moved"`
	Merges     int              `json:"merges"`
	Spawned    *engine.Location `json:"spawned,omitempty"`
	MaxTile    int              `json:"max_tile"`
	EmptyAfter int              `json:"empty_after"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"` // "move", "merge", "spawn", "won", "game_over", "reset", "invalid_direction"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Location  *engine.Location `json:"location,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for session creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	Rows          int    `json:"rows"`
	Columns       int    `json:"columns"`
	MergeDisabled bool   `json:"merge_disabled"`
	WinningTile   int    `json:"winning_tile"`
	Palette       string `json:"palette"`
}
