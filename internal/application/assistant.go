package application

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

const (
	keyAssistantRequests = "assistant.requests"

	sosCompletionNotes = "Completed via web"
)

func (a *App) loadAssistant(ctx context.Context, view domain.ViewID) error {
	if view == domain.ViewRequests || a.Snapshot().Assistant.BoardOpen {
		return a.loadAssistantRequests(ctx)
	}

	return nil
}

func (a *App) loadAssistantRequests(ctx context.Context) error {
	at := a.EnsureLocation(ctx)

	tok := a.begin(keyAssistantRequests)
	requests, err := a.api.NearbySOS(ctx, at, nearbySOSRadiusKm)
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch nearby sos")
		requests = nil
	}

	a.commit(tok, func(s *State) { s.Assistant.Requests = requests })
	return nil
}

// LoadNearbySOS fetches requests within 25 km and keeps them on screen
// without leaving the current view.
func (a *App) LoadNearbySOS(ctx context.Context) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	a.update(func(s *State) { s.Assistant.BoardOpen = true })
	return a.loadAssistantRequests(ctx)
}

func (a *App) AcceptSOS(ctx context.Context, requestID string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	if err := a.api.AcceptSOS(ctx, requestID); err != nil {
		return err
	}

	return a.loadAssistantRequests(ctx)
}

// CompleteSOS closes a request with no fee; the client has no fee entry.
func (a *App) CompleteSOS(ctx context.Context, requestID string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	if err := a.api.CompleteSOS(ctx, requestID, 0, sosCompletionNotes); err != nil {
		return err
	}

	return a.loadAssistantRequests(ctx)
}
