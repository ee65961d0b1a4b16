package dashboard

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jiranismart/jirani-cli/internal/application"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	screen application.Screen
	opts   RenderOptions
	output string
}

func newModel(screen application.Screen, opts RenderOptions) model {
	return model{screen: screen, opts: opts}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = View(m.screen, m.opts)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws screen once through a headless bubbletea program, the same
// path the interactive UI takes, and returns the frame.
func Render(screen application.Screen, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(screen, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
