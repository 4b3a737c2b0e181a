package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/game2048/game/engine"
)

func createTestConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Rows:        4,
		Columns:     4,
	}
}

func newTestManager() *Manager {
	return NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)), engine.WithRandomSource(engine.NewRandomSource(42)))
}

func TestManager_Create(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Fatal("Expected engine to be initialized")
		}
		if engine.CountEmpty(session.Engine.Snapshot()) != 15 {
			t.Error("Expected one starting tile")
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character session ID, got %q", session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		if _, err := manager.Create("test-session", config); !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		if _, err := manager.Create("TEST-SESSION", config); !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		if _, err := manager.Create("a/b", config); !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		invalidConfig := createTestConfig()
		invalidConfig.Rows = 0
		if _, err := manager.Create("invalid-test", invalidConfig); !errors.Is(err, engine.ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := newTestManager()
	created, _ := manager.Create("Get-Test", createTestConfig())

	tests := []struct {
		name string
		id   string
		err  error
	}{
		{"exact ID", "Get-Test", nil},
		{"lower case", "get-test", nil},
		{"upper case", "GET-TEST", nil},
		{"missing", "nope", ErrSessionNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			session, err := manager.Get(test.id)
			if !errors.Is(err, test.err) {
				t.Fatalf("Expected %v, got %v", test.err, err)
			}
			if test.err == nil && session != created {
				t.Error("Expected the stored session")
			}
		})
	}
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	first, err := manager.GetOrCreate("goc", config)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	second, err := manager.GetOrCreate("GOC", config)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first != second {
		t.Error("Expected the same session on second call")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_Delete(t *testing.T) {
	manager := newTestManager()
	manager.Create("del", createTestConfig())

	if err := manager.Delete("DEL"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := manager.Get("del"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected deleted session to be gone, got %v", err)
	}
	if err := manager.Delete("del"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	for _, id := range []string{"one", "two", "three"} {
		if _, err := manager.Create(id, config); err != nil {
			t.Fatalf("Create(%s) failed: %v", id, err)
		}
		time.Sleep(time.Millisecond)
	}

	sessions := manager.List()
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "one" || sessions[2].ID != "three" {
		t.Errorf("Expected creation order, got %s..%s", sessions[0].ID, sessions[2].ID)
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := newTestManager()
	config := createTestConfig()

	old, _ := manager.Create("old", config)
	manager.Create("fresh", config)
	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	if removed := manager.CleanupExpiredSessions(time.Hour); removed != 1 {
		t.Errorf("Expected 1 removed, got %d", removed)
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Error("Expected fresh session to survive")
	}
	if _, err := manager.Get("old"); err == nil {
		t.Error("Expected old session to be removed")
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := newTestManager()
	session, _ := manager.Create("touch", createTestConfig())
	before := session.LastAccessedAt

	time.Sleep(2 * time.Millisecond)
	if err := manager.UpdateLastAccessed("TOUCH"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("Expected last accessed time to advance")
	}
	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager(nil)
	config := createTestConfig()

	var wg sync.WaitGroup
	ids := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := manager.Create("", config)
			if err != nil {
				t.Errorf("Concurrent create failed: %v", err)
				return
			}
			ids <- session.ID
			manager.Get(session.ID)
			manager.UpdateLastAccessed(session.ID)
			manager.List()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("Duplicate session ID %s", id)
		}
		seen[id] = true
	}
	if manager.Count() != len(seen) {
		t.Errorf("Expected %d sessions, got %d", len(seen), manager.Count())
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := newTestManager()
	config := &engine.GameConfig{Name: "iso", Rows: 1, Columns: 4}

	a, _ := manager.Create("a", config)
	b, _ := manager.Create("b", config)

	before := b.Engine.Snapshot()
	a.Engine.Move(engine.Left)
	a.Engine.Move(engine.Left)

	after := b.Engine.Snapshot()
	if fmt.Sprint(before) != fmt.Sprint(after) {
		t.Error("Moves in one session changed another")
	}
	if b.Engine.GetState().Moves != 0 {
		t.Error("Expected untouched session to have no moves")
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager(nil)
	for i := 0; i < 100; i++ {
		session, err := manager.Create("", createTestConfig())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if strings.Trim(session.ID, "0123456789abcdef") != "" {
			t.Errorf("Expected lower-case hex ID, got %q", session.ID)
		}
	}
}
