package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/driftlab/vdyncore/internal/config"
)

func TestNewWritesJSONLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")
	logger, err := New(config.LoggingConfig{
		Level:      "info",
		Path:       path,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("vehicle initialized", String("preset", "drift_car"), Int("ticks", 42))
	if err := logger.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if decoded["message"] != "vehicle initialized" {
		t.Fatalf("unexpected message: %v", decoded["message"])
	}
	if decoded["preset"] != "drift_car" {
		t.Fatalf("unexpected preset field: %v", decoded["preset"])
	}
	if decoded["component"] != "vdyncore" {
		t.Fatalf("unexpected component field: %v", decoded["component"])
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filtered.log")
	logger, err := New(config.LoggingConfig{Level: "warn", Path: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("should be dropped")
	logger.Warn("should be kept")
	if err := logger.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "should be dropped") {
		t.Fatalf("expected info line to be filtered out, got %q", data)
	}
	if !strings.Contains(string(data), "should be kept") {
		t.Fatalf("expected warn line to be present, got %q", data)
	}
}

func TestWithAddsFieldsWithoutMutatingParent(t *testing.T) {
	base := NewTestLogger()
	derived := base.With(String("vehicle_id", "car-1"))
	if derived == base {
		t.Fatalf("expected With to return a distinct logger")
	}
	if derived.fields["vehicle_id"] != "car-1" {
		t.Fatalf("expected derived logger to carry vehicle_id, got %v", derived.fields["vehicle_id"])
	}
	if _, ok := base.fields["vehicle_id"]; ok {
		t.Fatalf("expected parent logger fields to be unchanged")
	}
}

func TestSessionIDRoundTripsThroughContext(t *testing.T) {
	ctx := context.Background()
	base := NewTestLogger()
	ctx, logger, sessionID := WithSession(ctx, base, "")
	if sessionID == "" {
		t.Fatalf("expected a generated session id")
	}
	if SessionIDFromContext(ctx) != sessionID {
		t.Fatalf("expected session id to round-trip through context")
	}
	if LoggerFromContext(ctx) != logger {
		t.Fatalf("expected derived logger to round-trip through context")
	}
}

func TestGenerateSessionIDIsUnique(t *testing.T) {
	a := GenerateSessionID()
	b := GenerateSessionID()
	if a == b {
		t.Fatalf("expected distinct session ids, got %q twice", a)
	}
}
