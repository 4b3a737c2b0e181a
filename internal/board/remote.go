package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/game2048/game/engine"
	ws "github.com/wricardo/game2048/transport/websocket"
)

var ErrClosed = errors.New("board closed")

// Remote mirrors a server session. Moves go out as websocket frames and the
// server's state_update broadcasts replace the local copy.
type Remote struct {
	sessionID string
	conn      *websocket.Conn
	logger    *slog.Logger

	mu      sync.RWMutex
	state   *engine.GameState
	lastErr string
	closed  bool

	writeMu sync.Mutex
	done    chan struct{}
}

// Dial fetches the session's current state over HTTP and subscribes to updates.
// baseURL is the server root, e.g. http://localhost:8080.
func Dial(baseURL, sessionID string, logger *slog.Logger) (*Remote, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	state, err := fetchState(base, sessionID)
	if err != nil {
		return nil, err
	}

	wsURL := *base
	switch base.Scheme {
	case "https":
		wsURL.Scheme = "wss"
	default:
		wsURL.Scheme = "ws"
	}
	wsURL.Path = base.Path + "/ws"
	wsURL.RawQuery = url.Values{"session": {sessionID}}.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	r := &Remote{
		sessionID: sessionID,
		conn:      conn,
		logger:    logger.With("session", sessionID),
		state:     state,
		done:      make(chan struct{}),
	}
	go r.listen()
	return r, nil
}

func fetchState(base *url.URL, sessionID string) (*engine.GameState, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(base.String() + "/api/sessions/" + url.PathEscape(sessionID) + "/state")
	if err != nil {
		return nil, fmt.Errorf("fetch state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		if msg := body["error"]; msg != "" {
			return nil, fmt.Errorf("fetch state: %s", msg)
		}
		return nil, fmt.Errorf("fetch state: status %d", resp.StatusCode)
	}

	var state engine.GameState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &state, nil
}

func (r *Remote) listen() {
	defer close(r.done)
	for {
		var msg ws.Message
		if err := r.conn.ReadJSON(&msg); err != nil {
			r.mu.RLock()
			closed := r.closed
			r.mu.RUnlock()
			if !closed {
				r.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		r.mu.Lock()
		switch msg.Event {
		case ws.EventStateUpdate:
			if msg.GameState != nil {
				r.state = msg.GameState
				r.lastErr = ""
			}
		case ws.EventError:
			r.lastErr = fmt.Sprint(msg.Data)
		}
		r.mu.Unlock()
	}
}

func (r *Remote) State() *engine.GameState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// LastError returns the most recent error event from the server
func (r *Remote) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Updates is closed when the connection drops
func (r *Remote) Updates() <-chan struct{} {
	return r.done
}

func (r *Remote) Move(dir engine.Direction) error {
	return r.send(ws.ClientMessage{Action: "move", Direction: dir.String()})
}

func (r *Remote) Reset() error {
	return r.send(ws.ClientMessage{Action: "reset"})
}

func (r *Remote) send(msg ws.ClientMessage) error {
	r.mu.RLock()
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	return r.conn.WriteJSON(msg)
}

func (r *Remote) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.writeMu.Lock()
	r.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	r.writeMu.Unlock()

	err := r.conn.Close()
	<-r.done
	return err
}
