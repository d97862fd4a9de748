package syncq

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"riseyn/internal/game"
)

func TestLoadEmptyQueue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty queue, got %d", len(got))
	}
}

func TestPushDedupesByKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	args, _ := json.Marshal(map[string]any{"hustle_id": "t1-sell-water"})
	for _, key := range []string{"a", "b", "a"} {
		if err := Push(Command{Action: game.CmdHustle, Args: args, IdempotencyKey: key}); err != nil {
			t.Fatalf("push %s: %v", key, err)
		}
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 queued commands, got %d", len(got))
	}
	if got[0].QueuedAt.IsZero() {
		t.Fatalf("expected queued_at stamped")
	}
	if _, err := os.Stat(filepath.Join(home, ".rise", "queue.json")); err != nil {
		t.Fatalf("queue file missing: %v", err)
	}
}

func TestDropSettled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, key := range []string{"a", "b", "c"} {
		if err := Push(Command{Action: game.CmdTap, IdempotencyKey: key}); err != nil {
			t.Fatalf("push: %v", err)
		}
	}
	remaining, err := Drop(map[string]bool{"a": true, "c": true})
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if len(remaining) != 1 || remaining[0].IdempotencyKey != "b" {
		t.Fatalf("unexpected remaining %+v", remaining)
	}
	reloaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(reloaded) != 1 {
		t.Fatalf("drop not persisted, have %d", len(reloaded))
	}
}
