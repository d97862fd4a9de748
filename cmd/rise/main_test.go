package main

import (
	"errors"
	"strings"
	"testing"

	"riseyn/internal/economy"

	tea "github.com/charmbracelet/bubbletea"
)

func TestParseMoves(t *testing.T) {
	got, err := parseMoves("pull, DUCK,reload pull duck")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []economy.Move{economy.MovePull, economy.MoveDuck, economy.MoveReload, economy.MovePull, economy.MoveDuck}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("move %d got=%s want=%s", i, got[i], want[i])
		}
	}

	if _, err := parseMoves("pull,duck"); !errors.Is(err, economy.ErrInvalidMoveCount) {
		t.Fatalf("expected move count error, got %v", err)
	}
	if _, err := parseMoves("pull,duck,dance,pull,duck"); !errors.Is(err, economy.ErrInvalidMove) {
		t.Fatalf("expected invalid move error, got %v", err)
	}
}

func press(m movePicker, keys ...string) (movePicker, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(movePicker)
	}
	return m, cmd
}

func TestMovePicker(t *testing.T) {
	m, _ := press(newMovePicker(), "p", "p", "p")
	if len(m.moves) != 3 {
		t.Fatalf("expected three moves, got %v", m.moves)
	}
	m, _ = press(m, "u")
	if len(m.moves) != 2 || m.moves[1] != economy.MovePull {
		t.Fatalf("undo failed: moves=%v", m.moves)
	}
	m, cmd := press(m, "r", "d", "x")
	if cmd != nil || m.done() {
		t.Fatalf("unknown key should not finish the picker")
	}
	m, cmd = press(m, "d")
	if !m.done() || cmd == nil {
		t.Fatalf("expected picker to finish after five moves")
	}
	if m.moves[2] != economy.MoveReload {
		t.Fatalf("unexpected moves %v", m.moves)
	}
	if view := m.View(); !strings.Contains(view, "loses to duck") || !strings.Contains(view, "loses to pull") {
		t.Fatalf("expected counters in view, got %q", view)
	}
}

func TestMovePickerQuit(t *testing.T) {
	m, cmd := press(newMovePicker(), "p", "q")
	if !m.cancelled || cmd == nil {
		t.Fatalf("expected cancel")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Lemonade Stand", 20, "Lemonade Stand"},
		{"Lemonade Stand", 8, "Lemonad~"},
		{"", 3, ""},
	}
	for _, tc := range tests {
		if got := truncate(tc.in, tc.n); got != tc.want {
			t.Fatalf("truncate(%q, %d) got=%q want=%q", tc.in, tc.n, got, tc.want)
		}
	}
}
