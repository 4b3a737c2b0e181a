package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Error("Expected default logger for a bare context")
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Fatal("Expected embedded logger")
	}

	FromContext(With(ctx, "session", "ab12")).Info("moved")
	if !strings.Contains(buf.String(), "session=ab12") {
		t.Errorf("Expected session attribute in %q", buf.String())
	}
}
