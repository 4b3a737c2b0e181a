package engine

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
	}{
		{"left", Left},
		{"ArrowLeft", Left},
		{"A", Left},
		{"h", Left},
		{"RIGHT", Right},
		{"ArrowRight", Right},
		{"d", Right},
		{"up", Up},
		{" ArrowUp ", Up},
		{"w", Up},
		{"k", Up},
		{"down", Down},
		{"ArrowDown", Down},
		{"s", Down},
		{"j", Down},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseDirection(test.input)
			if err != nil {
				t.Fatalf("ParseDirection(%q) failed: %v", test.input, err)
			}
			if got != test.expected {
				t.Errorf("ParseDirection(%q): expected %s, got %s", test.input, test.expected, got)
			}
		})
	}

	for _, bad := range []string{"", "diagonal", "north", "Enter"} {
		if _, err := ParseDirection(bad); !errors.Is(err, ErrInvalidDirection) {
			t.Errorf("ParseDirection(%q): expected ErrInvalidDirection, got %v", bad, err)
		}
	}
}

func TestDirectionString(t *testing.T) {
	for _, dir := range Directions {
		parsed, err := ParseDirection(dir.String())
		if err != nil || parsed != dir {
			t.Errorf("%s does not round-trip through ParseDirection", dir)
		}
	}
	if !strings.HasPrefix(Direction(9).String(), "direction(") {
		t.Errorf("Unexpected string for unknown direction: %s", Direction(9))
	}
	if Direction(9).Valid() || Direction(-1).Valid() {
		t.Error("Out of range directions should be invalid")
	}
}

func TestDirectionJSON(t *testing.T) {
	var req struct {
		Direction Direction `json:"direction"`
	}
	if err := json.Unmarshal([]byte(`{"direction": "ArrowDown"}`), &req); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if req.Direction != Down {
		t.Errorf("Expected down, got %s", req.Direction)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"direction":"down"}` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	if err := json.Unmarshal([]byte(`{"direction": "sideways"}`), &req); err == nil {
		t.Error("Expected error for unknown direction")
	}
}

func TestGameStateJSON(t *testing.T) {
	eng := NewEngineWithDefaults(WithRandomSource(&scriptedRandom{}))
	data, err := json.Marshal(eng.GetState())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, field := range []string{`"grid"`, `"won"`, `"game_over"`, `"last_spawn"`, `"config_name":"classic"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("Expected %s in %s", field, data)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, v := range []int{2, 4, 8, 1024, 2048, 65536} {
		if !IsPowerOfTwo(v) {
			t.Errorf("%d should be a tile value", v)
		}
	}
	for _, v := range []int{-2, 0, 1, 3, 6, 1000} {
		if IsPowerOfTwo(v) {
			t.Errorf("%d should not be a tile value", v)
		}
	}
}
