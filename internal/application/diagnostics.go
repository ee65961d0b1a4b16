package application

import (
	"context"
	"fmt"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

const msgURLSaved = "URL saved"

// SaveBaseURL normalizes raw and stores it as the base URL override.
func (a *App) SaveBaseURL(ctx context.Context, raw string) (string, error) {
	settings, err := a.settings.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read settings: %w", err)
	}

	settings.APIBaseOverride = domain.NormalizeBaseURL(raw, a.origin)
	if err := a.settings.Save(ctx, settings); err != nil {
		return "", fmt.Errorf("save settings: %w", err)
	}

	a.update(func(s *State) { s.PingMessage = msgURLSaved })
	return settings.APIBaseOverride, nil
}

// Ping checks /health/db and records the outcome for the diagnostics pane.
func (a *App) Ping(ctx context.Context) error {
	health, err := a.api.Health(ctx)
	if err != nil {
		a.update(func(s *State) {
			s.Ping = PingFailed
			s.PingMessage = err.Error()
		})
		return err
	}

	message := fmt.Sprintf("%s (%s)", orDefault(health.Message, "Backend online"), orDefault(health.Database, "unknown_db"))
	a.update(func(s *State) {
		s.Ping = PingOK
		s.PingMessage = message
	})

	return nil
}
