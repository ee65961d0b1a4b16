package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jiranismart/jirani-cli/internal/adapters/api"
	"github.com/jiranismart/jirani-cli/internal/adapters/api/apitest"
	"github.com/jiranismart/jirani-cli/internal/adapters/geo"
	tomlstore "github.com/jiranismart/jirani-cli/internal/adapters/store/toml"
	"github.com/jiranismart/jirani-cli/internal/application"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	app     *application.App
	backend *apitest.Backend
	sent    chan tea.Msg
}

func newFixture(t *testing.T, role domain.Role) *fixture {
	t.Helper()

	dir := t.TempDir()
	sessions, err := tomlstore.NewSessionStore(filepath.Join(dir, "session.toml"), zerolog.Nop())
	require.NoError(t, err)
	settings, err := tomlstore.NewSettingsStore(filepath.Join(dir, "settings.toml"))
	require.NoError(t, err)

	backend := apitest.New(t)
	client := api.NewClient(sessions, settings, api.Options{DefaultBaseURL: backend.BaseURL(), Logger: zerolog.Nop()})

	ctx := context.Background()
	if role != "" {
		require.NoError(t, sessions.Save(ctx, domain.Session{
			Token: "tok-1",
			User:  &domain.User{ID: domain.FlexString{Value: "5", Numeric: true}, Role: role, Name: "Wanjiru"},
			Stats: map[string]any{},
		}))
	}

	f := &fixture{backend: backend, sent: make(chan tea.Msg, 8)}
	f.app = application.New(application.Deps{
		API:      client,
		Sessions: sessions,
		Settings: settings,
		Locator:  geo.Fixed{Coordinate: domain.Coordinate{Lat: -1.3, Lng: 36.8}},
		Prompter: &channelPrompter{send: func(msg tea.Msg) { f.sent <- msg }},
		Logger:   zerolog.Nop(),
	})

	if role != "" {
		require.NoError(t, f.app.Bootstrap(ctx, ""))
	}

	return f
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out, cmd
}

// runOp executes the command an operation key returned, answering prompts
// from answers, and feeds the completion back into the model.
func runOp(t *testing.T, f *fixture, m model, cmd tea.Cmd, answers ...string) model {
	t.Helper()
	require.NotNil(t, cmd)
	require.True(t, m.busy)

	done := make(chan opDoneMsg, 1)
	go func() {
		collect(cmd, done)
	}()

	for {
		select {
		case msg := <-f.sent:
			req, ok := msg.(promptRequestMsg)
			require.True(t, ok)
			m, _ = update(t, m, req)
			require.NotNil(t, m.prompt)
			require.NotEmpty(t, answers, "unexpected prompt %q", req.label)
			assert.Contains(t, m.View(), req.label)
			for _, r := range answers[0] {
				m, _ = update(t, m, runes(string(r)))
			}
			answers = answers[1:]
			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			require.Nil(t, m.prompt)
		case msg := <-done:
			m, _ = update(t, m, msg)
			require.False(t, m.busy)
			return m
		case <-time.After(5 * time.Second):
			t.Fatal("operation did not finish")
		}
	}
}

func collect(cmd tea.Cmd, done chan<- opDoneMsg) {
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil {
				collect(c, done)
			}
		}
	case opDoneMsg:
		done <- msg
	}
}

func TestSignedOutScreenShowsAuthKeys(t *testing.T) {
	f := newFixture(t, "")
	m := newModel(context.Background(), f.app)

	view := m.View()
	assert.Contains(t, view, "Not signed in.")
	assert.Contains(t, view, authHint)
	assert.Contains(t, view, "login")

	m, _ = update(t, m, runes("d"))
	assert.Contains(t, m.View(), "Diagnostics")
}

func TestLoginThroughPrompts(t *testing.T) {
	f := newFixture(t, "")
	m := newModel(context.Background(), f.app)

	m, cmd := update(t, m, runes("l"))
	m = runOp(t, f, m, cmd, "0712345678", "Buyer", "secret1")

	assert.Equal(t, application.ModeDashboard, m.screen.Mode)
	assert.Contains(t, m.View(), "Buyer Console")
	assert.Empty(t, m.status)
}

func TestEscapeCancelsPromptQuietly(t *testing.T) {
	f := newFixture(t, "")
	m := newModel(context.Background(), f.app)

	m, cmd := update(t, m, runes("l"))

	done := make(chan opDoneMsg, 1)
	go collect(cmd, done)

	req := (<-f.sent).(promptRequestMsg)
	m, _ = update(t, m, req)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = update(t, m, <-done)
	assert.Equal(t, application.ModeAuth, m.screen.Mode)
	assert.Empty(t, m.status)
	assert.Empty(t, f.backend.RequestsTo("POST", "/auth/login"))
}

func TestNumberKeyRunsAction(t *testing.T) {
	f := newFixture(t, domain.RoleSeller)
	m := newModel(context.Background(), f.app)
	require.Equal(t, "Manage Products", m.screen.Actions()[0].Label)

	m, cmd := update(t, m, runes("1"))
	m = runOp(t, f, m, cmd)

	assert.True(t, m.screen.Menu[1].Active)
	assert.Equal(t, "Your Products", m.screen.Sections[1].Title)
}

func TestTabCyclesViews(t *testing.T) {
	f := newFixture(t, domain.RoleAgent)
	m := newModel(context.Background(), f.app)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = runOp(t, f, m, cmd)
	assert.True(t, m.screen.Menu[1].Active)

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = runOp(t, f, m, cmd)
	assert.True(t, m.screen.Menu[0].Active)
}

func TestSelectionWrapsAndRuns(t *testing.T) {
	f := newFixture(t, domain.RoleSeller)
	m := newModel(context.Background(), f.app)
	require.Len(t, m.screen.Actions(), 2)

	m, _ = update(t, m, runes("k"))
	assert.Equal(t, 2, m.selected)
	m, _ = update(t, m, runes("j"))
	assert.Equal(t, 1, m.selected)
	assert.Contains(t, m.View(), "> [1] Manage Products")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = runOp(t, f, m, cmd)
	assert.True(t, m.screen.Menu[1].Active)
}

func TestStockPromptFlowsThroughUI(t *testing.T) {
	f := newFixture(t, domain.RoleSeller)
	ctx := context.Background()
	require.NoError(t, f.app.Navigate(ctx, domain.ViewProducts))
	m := newModel(ctx, f.app)

	// [1] Add Product, [2] Update Stock on Sugar 1kg
	m, cmd := update(t, m, runes("2"))
	m = runOp(t, f, m, cmd, "55")

	reqs := f.backend.RequestsTo("PATCH", "/products/update/{id}")
	require.Len(t, reqs, 1)
	assert.Equal(t, "55", reqs[0].Form["stockQuantity"])
	assert.Empty(t, m.status)
}

func TestFailedActionShowsAlertOnce(t *testing.T) {
	f := newFixture(t, domain.RoleAgent)
	f.backend.Respond("GET", "/health/db", 503, `{"message":"Database down"}`)
	m := newModel(context.Background(), f.app)

	m, cmd := update(t, m, runes("p"))
	m = runOp(t, f, m, cmd)

	assert.Equal(t, "Database down", m.status)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.status)
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	f := newFixture(t, domain.RoleSeller)
	m := newModel(context.Background(), f.app)

	m, cmd := update(t, m, runes("r"))
	require.NotNil(t, cmd)

	m, next := update(t, m, runes("1"))
	assert.Nil(t, next)
	assert.True(t, m.busy)

	_, quit := update(t, m, runes("q"))
	require.NotNil(t, quit)
	assert.Equal(t, tea.QuitMsg{}, quit())
}

func TestChannelPrompter(t *testing.T) {
	ctx := context.Background()
	reply := func(r promptReply) *channelPrompter {
		return &channelPrompter{send: func(msg tea.Msg) {
			msg.(promptRequestMsg).reply <- r
		}}
	}

	ok, err := reply(promptReply{value: "Yes"}).Confirm(ctx, "Deactivate this account?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reply(promptReply{value: "nope"}).Confirm(ctx, "Deactivate this account?")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = reply(promptReply{cancelled: true}).Prompt(ctx, "Issue")
	require.ErrorIs(t, err, domain.ErrCancelled)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	silent := &channelPrompter{send: func(tea.Msg) {}}
	_, err = silent.Prompt(cancelled, "Issue")
	require.ErrorIs(t, err, context.Canceled)
}
