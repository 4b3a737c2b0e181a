package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wricardo/game2048/game/engine"
	"github.com/wricardo/game2048/internal/ctxlog"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	ctxlog.FromContext(ctx).Info("session created", "session", session.ID, "config", configID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	// write lock: touching the access time races with readers of it
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	ctxlog.FromContext(ctx).Info("session deleted", "session", sessionID)
	return nil
}

// Move processes one input for a session: shift, then spawn
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	logger := ctxlog.FromContext(ctx).With("session", sessionID)

	events := []GameEvent{}
	if reset {
		events = append(events, resetEvents(sess.Engine)...)
	}

	dir, err := engine.ParseDirection(direction)
	if err != nil {
		logger.Debug("rejected direction", "direction", direction)
		state := sess.Engine.GetState()
		return &MoveResult{
			Success:   false,
			Won:       state.Won,
			GameOver:  state.GameOver,
			GameState: state,
			Message:   fmt.Sprintf("Invalid direction %q: use left, right, up or down", direction),
			Events: append(events, GameEvent{
				Type:      EventInvalidDirection,
				Message:   err.Error(),
				Timestamp: time.Now(),
			}),
		}, nil
	}

	if sess.Engine.IsGameOver() {
		state := sess.Engine.GetState()
		return &MoveResult{
			Success:   false,
			Won:       state.Won,
			GameOver:  true,
			GameState: state,
			Message:   "Game over. Reset to play again",
			Events:    events,
		}, nil
	}

	step, stepEvents := applyMove(sess.Engine, dir, 1)
	events = append(events, stepEvents...)
	state := sess.Engine.GetState()

	logger.Debug("move", "direction", dir, "moved", step.Moved, "merges", step.Merges, "max_tile", step.MaxTile)
	if state.GameOver {
		logger.Info("game over", "max_tile", state.MaxTile, "moves", state.Moves)
	}

	return &MoveResult{
		Success:   true,
		Moved:     step.Moved,
		Merges:    step.Merges,
		Spawned:   step.Spawned,
		Won:       state.Won,
		GameOver:  state.GameOver,
		GameState: state,
		Message:   moveMessage(step, state, stepEvents, sess.Config.Target()),
		Events:    events,
		Step:      &step,
	}, nil
}

// BulkMove processes inputs in sequence, stopping at game over or a bad direction
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		result.Events = append(result.Events, resetEvents(sess.Engine)...)
	}

	startGrid := sess.Engine.Snapshot()
	result.StartMaxTile = engine.MaxTile(startGrid)

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game is over"
			result.StopReasonCode = StopGameOver
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d invalid: %q", i+1, move)
			result.StopReasonCode = StopInvalidDirection
			result.StoppedOnMove = i + 1
			result.Events = append(result.Events, GameEvent{
				Type:      EventInvalidDirection,
				Message:   err.Error(),
				Timestamp: time.Now(),
			})
			break
		}

		step, events := applyMove(sess.Engine, dir, i+1)
		result.MovesExecuted++
		result.Steps = append(result.Steps, step)
		result.Events = append(result.Events, events...)
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndMaxTile = endState.MaxTile
	result.SumDelta = engine.SumTiles(endState.Grid) - engine.SumTiles(startGrid)
	result.Won = endState.Won
	result.GameOver = endState.GameOver

	if result.GameOver && result.StopReasonCode == "" {
		result.StopReasonCode = StopGameOver
	}

	switch {
	case result.GameOver:
		result.Message = fmt.Sprintf("Game over after %d moves, max tile %d", endState.Moves, endState.MaxTile)
	case result.Won:
		result.Message = fmt.Sprintf("Reached %d, max tile %d", sess.Config.Target(), endState.MaxTile)
	default:
		result.Message = fmt.Sprintf("Executed %d of %d moves, max tile %d", result.MovesExecuted, result.RequestedMoves, endState.MaxTile)
	}

	ctxlog.FromContext(ctx).Debug("bulk move",
		"session", sessionID,
		"requested", result.RequestedMoves,
		"executed", result.MovesExecuted,
		"stop", result.StopReasonCode,
	)

	return result, nil
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Engine.Reset()
	ctxlog.FromContext(ctx).Info("session reset", "session", sessionID)

	return sess.Engine.GetState(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("config saved", "config", configName)
	return nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// applyMove runs one shift+spawn step and describes what happened
func applyMove(eng *engine.GameEngine, dir engine.Direction, idx int) (StepInfo, []GameEvent) {
	wonBefore := eng.HasWon()
	moved, spawned, err := eng.Move(dir)
	now := time.Now()
	merges := eng.LastMerges()

	events := []GameEvent{}
	if moved {
		events = append(events, GameEvent{Type: EventMove, Message: fmt.Sprintf("Shifted %s", dir), Timestamp: now})
	} else {
		events = append(events, GameEvent{Type: EventMove, Message: fmt.Sprintf("Nothing moved %s", dir), Timestamp: now})
	}
	if merges > 0 {
		events = append(events, GameEvent{Type: EventMerge, Message: fmt.Sprintf("%d merge(s)", merges), Timestamp: now})
	}
	if spawned != nil {
		events = append(events, GameEvent{
			Type:      EventSpawn,
			Message:   fmt.Sprintf("New %d at %s", engine.SpawnValue, spawned),
			Timestamp: now,
			Location:  spawned,
		})
	}
	if !wonBefore && eng.HasWon() {
		events = append(events, GameEvent{
			Type:      EventWon,
			Message:   fmt.Sprintf("Reached %d!", eng.GetConfig().Target()),
			Timestamp: now,
		})
	}
	if errors.Is(err, engine.ErrGridFull) || eng.IsGameOver() {
		events = append(events, GameEvent{Type: EventGameOver, Message: "No room for a new tile", Timestamp: now})
	}

	grid := eng.Snapshot()
	return StepInfo{
		Idx:        idx,
		Dir:        dir.String(),
		Moved:      moved,
		Merges:     merges,
		Spawned:    spawned,
		MaxTile:    engine.MaxTile(grid),
		EmptyAfter: engine.CountEmpty(grid),
	}, events
}

func resetEvents(eng *engine.GameEngine) []GameEvent {
	loc := eng.Reset()
	now := time.Now()
	return []GameEvent{
		{Type: EventReset, Message: "Game reset to initial state", Timestamp: now},
		{Type: EventSpawn, Message: fmt.Sprintf("New %d at %s", engine.SpawnValue, loc), Timestamp: now, Location: &loc},
	}
}

func moveMessage(step StepInfo, state *engine.GameState, events []GameEvent, target int) string {
	if state.GameOver {
		return fmt.Sprintf("Game over! Max tile %d after %d moves", state.MaxTile, state.Moves)
	}
	for _, ev := range events {
		if ev.Type == EventWon {
			return fmt.Sprintf("You reached %d! Keep going", target)
		}
	}
	switch {
	case step.Moved:
		return fmt.Sprintf("Moved %s", step.Dir)
	default:
		return fmt.Sprintf("Nothing moved %s", step.Dir)
	}
}
