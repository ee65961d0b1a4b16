package application

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jiranismart/jirani-cli/internal/adapters/api"
	"github.com/jiranismart/jirani-cli/internal/adapters/api/apitest"
	tomlstore "github.com/jiranismart/jirani-cli/internal/adapters/store/toml"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type harness struct {
	app      *App
	backend  *apitest.Backend
	sessions *tomlstore.SessionStore
	settings *tomlstore.SettingsStore
	locator  *stubLocator
	prompter *scriptedPrompter
	clock    *fakeClock
}

// newHarness wires an App against the in-process backend. A non-empty role
// seeds a stored session for user 5.
func newHarness(t *testing.T, role domain.Role) *harness {
	t.Helper()

	dir := t.TempDir()
	sessions, err := tomlstore.NewSessionStore(filepath.Join(dir, "session.toml"), zerolog.Nop())
	require.NoError(t, err)
	settings, err := tomlstore.NewSettingsStore(filepath.Join(dir, "settings.toml"))
	require.NoError(t, err)

	backend := apitest.New(t)
	client := api.NewClient(sessions, settings, api.Options{DefaultBaseURL: backend.BaseURL(), Logger: zerolog.Nop()})

	h := &harness{
		backend:  backend,
		sessions: sessions,
		settings: settings,
		locator:  &stubLocator{at: domain.Coordinate{Lat: -1.3, Lng: 36.8}},
		prompter: &scriptedPrompter{},
		clock:    &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}

	if role != "" {
		require.NoError(t, sessions.Save(context.Background(), domain.Session{
			Token: "tok-1",
			User:  &domain.User{ID: domain.FlexString{Value: "5", Numeric: true}, Role: role, Name: "Wanjiru", Phone: "0712345678"},
			Stats: map[string]any{},
		}))
	}

	h.app = New(Deps{
		API:      client,
		Sessions: sessions,
		Settings: settings,
		Locator:  h.locator,
		Prompter: h.prompter,
		Clock:    h.clock,
		Logger:   zerolog.Nop(),
	})

	return h
}

// signIn restores the seeded session on the requested view.
func (h *harness) signIn(t *testing.T, view domain.ViewID) {
	t.Helper()

	require.NoError(t, h.app.Bootstrap(context.Background(), view))
}

type stubLocator struct {
	mu    sync.Mutex
	at    domain.Coordinate
	err   error
	block bool
	calls int
}

func (l *stubLocator) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	l.mu.Lock()
	l.calls++
	at, err, block := l.at, l.err, l.block
	l.mu.Unlock()

	if block {
		<-ctx.Done()
		return domain.Coordinate{}, ctx.Err()
	}

	return at, err
}

func (l *stubLocator) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.calls
}

type scriptedPrompter struct {
	mu      sync.Mutex
	answers []string
	err     error
	confirm bool
	asked   []string
}

func (p *scriptedPrompter) Prompt(_ context.Context, label string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.asked = append(p.asked, label)
	if p.err != nil {
		return "", p.err
	}
	if len(p.answers) == 0 {
		return "", domain.ErrCancelled
	}

	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Confirm(_ context.Context, question string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.asked = append(p.asked, question)
	return p.confirm, p.err
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}
