// Package board gives interactive frontends one view of a game, whether the
// engine runs in-process or on a server reached over a websocket.
package board

import (
	"errors"
	"strconv"
	"strings"

	"github.com/wricardo/game2048/game/engine"
)

// Board is the game surface a frontend drives
type Board interface {
	// State returns the latest known state, or nil before the first update
	State() *engine.GameState
	Move(dir engine.Direction) error
	Reset() error
	Close() error
}

// Local runs an engine in-process
type Local struct {
	eng   *engine.GameEngine
	state *engine.GameState
}

// NewLocal builds a board around a fresh engine for config
func NewLocal(config *engine.GameConfig, opts ...engine.Option) (*Local, error) {
	eng, err := engine.NewEngine(config, opts...)
	if err != nil {
		return nil, err
	}
	return &Local{eng: eng, state: eng.GetState()}, nil
}

func (l *Local) State() *engine.GameState {
	return l.state
}

// Move shifts then spawns. A finished game ignores input until Reset.
func (l *Local) Move(dir engine.Direction) error {
	if l.eng.IsGameOver() {
		return nil
	}
	_, _, err := l.eng.Move(dir)
	l.state = l.eng.GetState()
	if errors.Is(err, engine.ErrGridFull) {
		return nil
	}
	return err
}

func (l *Local) Reset() error {
	l.eng.Reset()
	l.state = l.eng.GetState()
	return nil
}

func (l *Local) Close() error {
	return nil
}

// Text renders the grid as tab-separated rows, empty cells as 0
func Text(state *engine.GameState) string {
	if state == nil {
		return ""
	}
	var b strings.Builder
	for _, row := range state.Grid {
		for j, value := range row {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(strconv.Itoa(value))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
