package engine

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNoUpdateAvailableDirectiveJSON(t *testing.T) {
	data, err := json.Marshal(NoUpdateAvailableDirective())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"type":"noUpdateAvailable"}` {
		t.Fatalf("unexpected encoding: %s", data)
	}
}

func TestRollBackToEmbeddedDirectiveJSON(t *testing.T) {
	commit := time.Date(2026, 3, 1, 12, 30, 45, 123_000_000, time.UTC)
	data, err := json.Marshal(RollBackToEmbeddedDirective(commit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"type":"rollBackToEmbedded","parameters":{"commitTime":"2026-03-01T12:30:45.123Z"}}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}
