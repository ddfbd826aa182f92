package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, WarnLevel)

	log.Debug("d")
	log.Info("i")
	log.Warn("w")
	log.Error("e")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, InfoLevel)

	log.Info("wall created", String("wall", "abc"), Int("count", 3))

	var e struct {
		Level   string         `json:"level"`
		Message string         `json:"msg"`
		Fields  map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if e.Level != "INFO" || e.Message != "wall created" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Fields["wall"] != "abc" {
		t.Errorf("missing field wall: %v", e.Fields)
	}
	if e.Fields["count"] != float64(3) {
		t.Errorf("missing field count: %v", e.Fields)
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, InfoLevel).With(String("component", "tool"))

	log.Info("ready")

	var e struct {
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Fields["component"] != "tool" {
		t.Errorf("With field missing: %v", e.Fields)
	}
}

func TestErrorField(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, InfoLevel)

	log.Error("boom", Error(errors.New("broken pipe")))
	if !strings.Contains(buf.String(), "broken pipe") {
		t.Errorf("error text missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		expect Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"nonsense", InfoLevel},
		{"", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.expect {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.expect)
		}
	}
}

func TestNopDiscards(t *testing.T) {
	// Must not panic and must stay silent.
	log := Nop()
	log.Error("ignored")
}
