package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// slowAfter is when the spinner starts showing elapsed seconds.
const slowAfter = 2 * time.Second

type taskDoneMsg struct {
	err error
}

type taskSpinner struct {
	spinner spinner.Model
	label   string
	task    tea.Cmd
	started time.Time
	now     func() time.Time

	err  error
	done bool
}

func newTaskSpinner(label string, task tea.Cmd, now func() time.Time) taskSpinner {
	return taskSpinner{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		label:   label,
		task:    task,
		started: now(),
		now:     now,
	}
}

func (m taskSpinner) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.task)
}

func (m taskSpinner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m taskSpinner) View() string {
	if m.done {
		return ""
	}

	line := m.spinner.View() + " " + m.label
	if elapsed := m.now().Sub(m.started); elapsed >= slowAfter {
		line += fmt.Sprintf(" %ds", int(elapsed.Seconds()))
	}

	return line
}

// withSpinner runs task while a spinner draws on output. The program owns no
// input, so it never competes with prompts for the terminal.
func withSpinner(ctx context.Context, output io.Writer, label string, task func(context.Context) error) error {
	p := tea.NewProgram(
		newTaskSpinner(label, func() tea.Msg {
			return taskDoneMsg{err: task(ctx)}
		}, time.Now),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := final.(taskSpinner)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", final)
	}

	return result.err
}
