package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"riseyn/internal/economy"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var errPickCancelled = errors.New("shootout cancelled")

type pickerKeys struct {
	Pull   key.Binding
	Duck   key.Binding
	Reload key.Binding
	Undo   key.Binding
	Quit   key.Binding
}

func (k pickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Pull, k.Duck, k.Reload, k.Undo, k.Quit}
}

func (k pickerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultPickerKeys = pickerKeys{
	Pull:   key.NewBinding(key.WithKeys("p", "1"), key.WithHelp("p", "pull")),
	Duck:   key.NewBinding(key.WithKeys("d", "2"), key.WithHelp("d", "duck")),
	Reload: key.NewBinding(key.WithKeys("r", "3"), key.WithHelp("r", "reload")),
	Undo:   key.NewBinding(key.WithKeys("backspace", "u"), key.WithHelp("u", "undo")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// movePicker scripts the five shootout moves and shows what each one loses to.
type movePicker struct {
	keys      pickerKeys
	help      help.Model
	moves     []economy.Move
	cancelled bool
}

func newMovePicker() movePicker {
	return movePicker{keys: defaultPickerKeys, help: help.New()}
}

func (m movePicker) Init() tea.Cmd {
	return nil
}

func (m movePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Undo):
		if len(m.moves) > 0 {
			m.moves = m.moves[:len(m.moves)-1]
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Pull):
		m.moves = append(m.moves, economy.MovePull)
	case key.Matches(keyMsg, m.keys.Duck):
		m.moves = append(m.moves, economy.MoveDuck)
	case key.Matches(keyMsg, m.keys.Reload):
		m.moves = append(m.moves, economy.MoveReload)
	default:
		return m, nil
	}
	if m.done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m movePicker) done() bool {
	return len(m.moves) >= economy.ShootoutMoves
}

func (m movePicker) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Shootout") + "\n\n")
	for i := 0; i < economy.ShootoutMoves; i++ {
		slot := labelStyle.Render("...")
		if i < len(m.moves) {
			mv := m.moves[i]
			slot = lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-7s", mv)) +
				" " + labelStyle.Render("loses to "+string(mv.Counter()))
		}
		fmt.Fprintf(&b, "  round %d  %s\n", i+1, slot)
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func pickMoves() ([]economy.Move, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := promptRequired("Moves (pull,duck,reload x5)")
		if err != nil {
			return nil, err
		}
		return parseMoves(raw)
	}
	final, err := tea.NewProgram(newMovePicker()).Run()
	if err != nil {
		return nil, err
	}
	picked, ok := final.(movePicker)
	if !ok || picked.cancelled || !picked.done() {
		return nil, errPickCancelled
	}
	return picked.moves, nil
}
