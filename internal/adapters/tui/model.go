// Package tui runs the interactive dashboard. Every flow runs as a bubbletea
// command off the update loop; prompts those flows need come back in as
// messages so the loop never blocks.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jiranismart/jirani-cli/internal/adapters/render/dashboard"
	"github.com/jiranismart/jirani-cli/internal/application"
	"github.com/jiranismart/jirani-cli/internal/domain"
)

const authHint = "Press l to log in, n to register, f if you forgot your password."

type opDoneMsg struct {
	err error
}

type activePrompt struct {
	label string
	input textinput.Model
	reply chan promptReply
}

type model struct {
	ctx context.Context
	app *application.App

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	screen   application.Screen
	selected int
	width    int

	busy   bool
	label  string
	prompt *activePrompt
	status string
}

var (
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	promptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1)
	busyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
)

func newModel(ctx context.Context, app *application.App) model {
	m := model{
		ctx:  ctx,
		app:  app,
		keys: DefaultKeyMap,
		help: help.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(busyStyle),
		),
	}
	m.refresh()

	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m *model) refresh() {
	m.screen = application.Project(m.app.Snapshot(), m.app.BaseURL(m.ctx))
	if m.selected > len(m.screen.Actions()) {
		m.selected = 0
	}
}

// start runs fn as a command and shows the spinner until it reports back.
func (m model) start(label string, fn func(context.Context) error) (tea.Model, tea.Cmd) {
	m.busy = true
	m.label = label
	m.status = ""

	ctx := m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return opDoneMsg{err: fn(ctx)}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case promptRequestMsg:
		input := textinput.New()
		input.Prompt = "> "
		if msg.confirm {
			input.Placeholder = "y/N"
		}
		if strings.Contains(strings.ToLower(msg.label), "password") {
			input.EchoMode = textinput.EchoPassword
		}
		input.Focus()
		m.prompt = &activePrompt{label: msg.label, input: input, reply: msg.reply}
		return m, textinput.Blink

	case opDoneMsg:
		m.busy = false
		m.label = ""
		m.refresh()
		m.status = m.statusFor(msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.prompt != nil {
			return m.updatePrompt(msg)
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if m.screen.Mode == application.ModeAuth {
			return m.updateAuth(msg)
		}
		return m.updateDashboard(msg)
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.prompt.reply <- promptReply{value: m.prompt.input.Value()}
		m.prompt = nil
		return m, nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.prompt.reply <- promptReply{cancelled: true}
		m.prompt = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Login):
		return m.start("Signing in...", m.app.PromptLogin)
	case key.Matches(msg, m.keys.Register):
		return m.start("Registering...", m.app.PromptRegister)
	case key.Matches(msg, m.keys.Forgot):
		return m.start("Sending code...", m.app.PromptForgotPassword)
	case key.Matches(msg, m.keys.Reset):
		return m.start("Resetting password...", m.app.PromptResetPassword)
	case key.Matches(msg, m.keys.Diagnostics):
		m.app.ToggleDiagnostics()
		m.refresh()
	case key.Matches(msg, m.keys.Ping):
		return m.start("Pinging backend...", m.app.Ping)
	case key.Matches(msg, m.keys.SetURL):
		return m.start("Saving URL...", m.app.PromptBaseURL)
	}

	return m, nil
}

func (m model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	actions := m.screen.Actions()

	switch {
	case key.Matches(msg, m.keys.NextView):
		return m.switchView(1)
	case key.Matches(msg, m.keys.PrevView):
		return m.switchView(-1)
	case key.Matches(msg, m.keys.Down):
		if len(actions) > 0 {
			m.selected = m.selected%len(actions) + 1
		}
	case key.Matches(msg, m.keys.Up):
		if len(actions) > 0 {
			m.selected--
			if m.selected < 1 {
				m.selected = len(actions)
			}
		}
	case key.Matches(msg, m.keys.Run):
		if m.selected > 0 && m.selected <= len(actions) {
			return m.perform(actions[m.selected-1])
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.start("Refreshing...", m.app.LoadView)
	case key.Matches(msg, m.keys.Diagnostics):
		m.app.ToggleDiagnostics()
		m.refresh()
	case key.Matches(msg, m.keys.Ping):
		return m.start("Pinging backend...", m.app.Ping)
	case key.Matches(msg, m.keys.SetURL):
		return m.start("Saving URL...", m.app.PromptBaseURL)
	case key.Matches(msg, m.keys.Locate):
		return m.perform(application.Action{ID: application.ActionRefreshLocation})
	case key.Matches(msg, m.keys.Search):
		if m.screen.Role.Family() == domain.FamilyBuyer {
			return m.perform(application.Action{ID: application.ActionSearch})
		}
	case key.Matches(msg, m.keys.Category):
		if m.screen.Role.Family() == domain.FamilyBuyer {
			return m.perform(application.Action{ID: application.ActionCategory})
		}
	case key.Matches(msg, m.keys.Dismiss):
		m.app.ClearAlert()
		m.status = ""
		m.refresh()
	case key.Matches(msg, m.keys.Logout):
		m.selected = 0
		return m.start("Signing out...", m.app.Logout)
	default:
		if n, ok := digit(msg); ok && n <= len(actions) {
			m.selected = n
			return m.perform(actions[n-1])
		}
	}

	return m, nil
}

func (m model) perform(action application.Action) (tea.Model, tea.Cmd) {
	label := action.Label
	if label == "" {
		label = string(action.ID)
	}

	app := m.app
	return m.start(label+"...", func(ctx context.Context) error {
		return app.Perform(ctx, action)
	})
}

func (m model) switchView(step int) (tea.Model, tea.Cmd) {
	menu := m.screen.Menu
	if len(menu) < 2 {
		return m, nil
	}

	current := 0
	for i, entry := range menu {
		if entry.Active {
			current = i
		}
	}
	next := menu[(current+step+len(menu))%len(menu)].ID

	m.selected = 0
	app := m.app
	return m.start("Loading...", func(ctx context.Context) error {
		return app.Navigate(ctx, next)
	})
}

// statusFor reports failures the screen does not already show.
func (m model) statusFor(err error) string {
	if err == nil || errors.Is(err, domain.ErrCancelled) {
		return ""
	}

	text := err.Error()
	if text == m.screen.Alert || text == m.screen.Notice.Text {
		return ""
	}

	return text
}

func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}

	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}

	return int(r - '0'), true
}

func (m model) View() string {
	parts := []string{dashboard.View(m.screen, dashboard.RenderOptions{
		Width:    m.width,
		Selected: m.selected,
		AuthHint: authHint,
	})}

	if m.status != "" {
		parts = append(parts, "", statusStyle.Render(m.status))
	}

	switch {
	case m.prompt != nil:
		parts = append(parts, "", promptStyle.Render(m.prompt.label+"\n"+m.prompt.input.View()))
	case m.busy:
		parts = append(parts, "", fmt.Sprintf("%s %s", m.spinner.View(), m.label))
	}

	if m.screen.Mode == application.ModeAuth {
		parts = append(parts, "", m.help.View(authKeys(m.keys)))
	} else {
		parts = append(parts, "", m.help.View(m.keys))
	}

	return strings.Join(parts, "\n")
}

// Run starts the interactive dashboard on in/out and binds the app's prompter
// to it until the program exits.
func Run(ctx context.Context, app *application.App, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prompter := &channelPrompter{}
	p := tea.NewProgram(
		newModel(ctx, app),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	prompter.send = p.Send
	app.SetPrompter(prompter)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}
