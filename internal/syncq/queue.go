package syncq

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"riseyn/internal/game"
)

// Command is an action the CLI could not deliver, kept for sync replay.
type Command = game.Command

func queuePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".rise")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "queue.json"), nil
}

func Load() ([]Command, error) {
	path, err := queuePath()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Command{}, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return []Command{}, nil
	}
	var out []Command
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func Save(commands []Command) error {
	path, err := queuePath()
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(commands, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// Push appends cmd unless a command with the same idempotency key is already
// queued.
func Push(cmd Command) error {
	commands, err := Load()
	if err != nil {
		return err
	}
	for _, c := range commands {
		if c.IdempotencyKey == cmd.IdempotencyKey {
			return nil
		}
	}
	if cmd.QueuedAt.IsZero() {
		cmd.QueuedAt = time.Now().UTC()
	}
	commands = append(commands, cmd)
	return Save(commands)
}

// Drop removes every queued command whose idempotency key is in settled and
// returns what is left.
func Drop(settled map[string]bool) ([]Command, error) {
	commands, err := Load()
	if err != nil {
		return nil, err
	}
	remaining := make([]Command, 0, len(commands))
	for _, c := range commands {
		if !settled[c.IdempotencyKey] {
			remaining = append(remaining, c)
		}
	}
	if err := Save(remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}
