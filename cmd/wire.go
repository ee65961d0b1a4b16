package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jiranismart/jirani-cli/internal/adapters/api"
	"github.com/jiranismart/jirani-cli/internal/adapters/geo"
	"github.com/jiranismart/jirani-cli/internal/adapters/prompt"
	"github.com/jiranismart/jirani-cli/internal/adapters/render/dashboard"
	tomlstore "github.com/jiranismart/jirani-cli/internal/adapters/store/toml"
	"github.com/jiranismart/jirani-cli/internal/application"
	"github.com/jiranismart/jirani-cli/internal/config"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/jiranismart/jirani-cli/internal/logging"
	"github.com/jiranismart/jirani-cli/internal/ports"
	"golang.org/x/term"
)

type app struct {
	cfg      *config.Config
	service  *application.App
	metrics  *api.Metrics
	terminal ports.Prompter
	renderer func(application.Screen, dashboard.RenderOptions) (string, error)
	now      func() time.Time

	plain bool
	width int
}

type globalOptions struct {
	logLevel string
	plain    bool
	width    int
}

// wire builds the app from the environment, the optional config file and
// the global flags. Commands share the same *app, filled in before they run.
func (a *app) wire(ctx context.Context, opts globalOptions, in io.Reader, out, errOut io.Writer) error {
	cfg, err := config.Load(ctx, nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger := logging.Init(logging.Options{Level: level, Pretty: cfg.LogPretty, Output: errOut})

	sessions, err := tomlstore.NewSessionStore(cfg.SessionPath(), logger)
	if err != nil {
		return fmt.Errorf("wire session store: %w", err)
	}
	settings, err := tomlstore.NewSettingsStore(cfg.SettingsPath())
	if err != nil {
		return fmt.Errorf("wire settings store: %w", err)
	}

	// requests end with the command context; location fixes carry their own deadline
	httpClient := &http.Client{}
	metrics := api.NewMetrics()
	client := api.NewClient(sessions, settings, api.Options{
		HTTPClient:     httpClient,
		DefaultBaseURL: cfg.APIBaseURL,
		Origin:         cfg.Origin,
		Logger:         logger,
		Metrics:        metrics,
	})

	terminal := prompt.NewTerminal(in, errOut)

	*a = app{
		cfg:     cfg,
		metrics: metrics,
		service: application.New(application.Deps{
			API:      client,
			Sessions: sessions,
			Settings: settings,
			Locator:  newLocator(cfg.Location, httpClient),
			Prompter: terminal,
			Logger:   logger,
			Origin:   cfg.Origin,
		}),
		terminal: terminal,
		renderer: dashboard.Render,
		now:      time.Now,
		plain:    opts.plain,
		width:    dashboardWidth(opts.width, out),
	}

	return nil
}

// newLocator returns nil for the "none" provider, which the app treats as a
// device without location support.
func newLocator(cfg config.LocationConfig, httpClient *http.Client) ports.Locator {
	switch cfg.Provider {
	case config.ProviderFixed:
		return geo.Fixed{Coordinate: domain.Coordinate{Lat: cfg.FixedLat, Lng: cfg.FixedLng}}
	case config.ProviderNone:
		return nil
	default:
		return &geo.IPLookup{URL: cfg.URL, HTTPClient: httpClient}
	}
}

// dashboardWidth keeps an explicit --width and otherwise fits the dashboard
// to the terminal on stdout. Pipes and buffers get untruncated lines.
func dashboardWidth(flagWidth int, out io.Writer) int {
	if flagWidth > 0 {
		return flagWidth
	}

	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
