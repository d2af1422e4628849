package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true)
)

type confirmKeys struct {
	Up     key.Binding
	Down   key.Binding
	Yes    key.Binding
	No     key.Binding
	Select key.Binding
	Quit   key.Binding
}

var keys = confirmKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k", "left", "h"), key.WithHelp("↑/↓", "navigate")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "right", "l", "tab")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "continue")),
	No:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "abort")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("q", "cancel")),
}

// Confirmer asks whether generation may proceed into a non-empty destination.
type Confirmer func(destination string) (bool, error)

// isInteractive reports whether both stdin and stdout are terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalConfirm shows the confirmation menu on the terminal.
func terminalConfirm(destination string) (bool, error) {
	p := tea.NewProgram(newConfirmModel(destination))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("failed to show prompt: %w", err)
	}
	return final.(confirmModel).accepted, nil
}

// confirmModel is the BubbleTea model for the non-empty destination menu
type confirmModel struct {
	destination string
	choices     []string
	cursor      int
	accepted    bool
	done        bool
}

func newConfirmModel(destination string) confirmModel {
	return confirmModel{
		destination: destination,
		choices: []string{
			"No, abort",
			"Yes, continue and overwrite",
		},
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, keys.Quit), key.Matches(km, keys.No):
		m.accepted = false
		m.done = true
		return m, tea.Quit

	case key.Matches(km, keys.Yes):
		m.accepted = true
		m.done = true
		return m, tea.Quit

	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(km, keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}

	case key.Matches(km, keys.Select):
		m.accepted = m.cursor == 1
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(warningStyle.Render("destination is not empty, continue? ") + titleStyle.Render(m.destination) + "\n\n")
	b.WriteString(mutedStyle.Render("    "+helpLine(keys.Up, keys.Select, keys.Yes, keys.No)) + "\n\n")

	for i, choice := range m.choices {
		if m.cursor == i {
			b.WriteString("    " + selectedStyle.Render("> "+choice) + "\n")
		} else {
			b.WriteString("      " + choice + "\n")
		}
	}

	return b.String()
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return strings.Join(parts, "    ")
}
