package application

import (
	"context"
	"sync"
	"time"

	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/jiranismart/jirani-cli/internal/ports"
	"github.com/rs/zerolog"
)

const defaultGeoTimeout = 8 * time.Second

const (
	nearbySellersRadiusKm = 10
	nearbySOSRadiusKm     = 25
)

type Deps struct {
	API      ports.MarketplaceAPI
	Sessions ports.SessionStore
	Settings ports.SettingsStore
	// Locator may be nil when no location provider is configured.
	Locator  ports.Locator
	Prompter ports.Prompter
	Clock    ports.Clock
	Logger   zerolog.Logger
	// Origin is the address base URLs are derived from when none is set.
	Origin     string
	GeoTimeout time.Duration
}

// App owns the client state and runs every flow against it. Network calls
// happen outside the lock; results are committed under a generation token so
// a slower, older fetch never overwrites a newer one.
type App struct {
	api        ports.MarketplaceAPI
	sessions   ports.SessionStore
	settings   ports.SettingsStore
	locator    ports.Locator
	prompter   ports.Prompter
	clock      ports.Clock
	logger     zerolog.Logger
	origin     string
	geoTimeout time.Duration

	mu          sync.Mutex
	state       State
	epoch       uint64
	generations map[string]uint64
}

func New(deps Deps) *App {
	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	geoTimeout := deps.GeoTimeout
	if geoTimeout <= 0 {
		geoTimeout = defaultGeoTimeout
	}

	origin := deps.Origin
	if origin == "" {
		origin = domain.DefaultOrigin
	}

	return &App{
		api:         deps.API,
		sessions:    deps.Sessions,
		settings:    deps.Settings,
		locator:     deps.Locator,
		prompter:    deps.Prompter,
		clock:       clock,
		logger:      deps.Logger,
		origin:      origin,
		geoTimeout:  geoTimeout,
		state:       newState(),
		generations: map[string]uint64{},
	}
}

// SetPrompter swaps the prompter, which the interactive UI binds once its
// program is running.
func (a *App) SetPrompter(p ports.Prompter) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.prompter = p
}

func (a *App) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

func (a *App) BaseURL(ctx context.Context) string {
	return a.api.BaseURL(ctx)
}

func (a *App) update(fn func(*State)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fn(&a.state)
}

type fetchToken struct {
	key   string
	gen   uint64
	epoch uint64
}

// begin starts a fetch for one collection and supersedes any fetch of the
// same collection still in flight.
func (a *App) begin(key string) fetchToken {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.generations[key]++
	return fetchToken{key: key, gen: a.generations[key], epoch: a.epoch}
}

// commit applies fn only if tok is still the latest fetch of its collection
// for the current session.
func (a *App) commit(tok fetchToken, fn func(*State)) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if tok.epoch != a.epoch || a.generations[tok.key] != tok.gen {
		a.logger.Debug().Str("collection", tok.key).Uint64("generation", tok.gen).Msg("discarding stale fetch result")
		return false
	}

	fn(&a.state)
	return true
}

// resetSession drops everything tied to the previous session and bumps the
// epoch so in-flight fetches of that session are discarded.
func (a *App) resetSession(session *domain.Session, view domain.ViewID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.epoch++
	fresh := newState()
	fresh.Geo = a.state.Geo
	fresh.DiagnosticsOpen = a.state.DiagnosticsOpen
	fresh.Ping = a.state.Ping
	fresh.PingMessage = a.state.PingMessage
	fresh.Session = session
	fresh.View = view
	a.state = fresh
}

// currentUser returns the signed-in user or ErrNoSession.
func (a *App) currentUser() (domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.state.Session.Valid() {
		return domain.User{}, domain.ErrNoSession
	}

	return *a.state.Session.User, nil
}

func (a *App) currentPrompter() ports.Prompter {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.prompter
}

func (a *App) setAlert(message string) {
	a.update(func(s *State) { s.Alert = message })
}

// ClearAlert dismisses the last action message.
func (a *App) ClearAlert() {
	a.setAlert("")
}
