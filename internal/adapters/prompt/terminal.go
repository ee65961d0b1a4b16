// Package prompt implements ports.Prompter for the terminal.
package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jiranismart/jirani-cli/internal/domain"
)

// Terminal asks one question at a time through a short-lived bubbletea
// program on in/out.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

func (t *Terminal) Prompt(ctx context.Context, label string) (string, error) {
	return t.run(ctx, newInputModel(label, ""))
}

// Confirm accepts y or yes in any case. Anything else is a decline.
func (t *Terminal) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := t.run(ctx, newInputModel(question, "y/N"))
	if err != nil {
		return false, err
	}

	return isYes(answer), nil
}

func (t *Terminal) run(ctx context.Context, m inputModel) (string, error) {
	p := tea.NewProgram(m,
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected final prompt model type %T", finalModel)
	}

	return result.result()
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

var labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

type inputModel struct {
	label     string
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newInputModel(label, placeholder string) inputModel {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "> "
	input.Focus()

	return inputModel{label: label, input: input}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	return labelStyle.Render(m.label) + "\n" + m.input.View() + "\n"
}

func (m inputModel) result() (string, error) {
	if !m.submitted {
		return "", domain.ErrCancelled
	}

	return m.input.Value(), nil
}
