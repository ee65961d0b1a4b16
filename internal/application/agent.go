package application

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

const (
	keyAgentStats   = "agent.stats"
	keyAgentSellers = "agent.sellers"

	deactivateQuestion = "Deactivate this account?"
)

func (a *App) loadAgent(ctx context.Context, user domain.User, view domain.ViewID) error {
	switch view {
	case domain.ViewSellers:
		return a.loadAgentSellers(ctx)
	default:
		return a.loadAgentStats(ctx, user)
	}
}

func (a *App) loadAgentStats(ctx context.Context, user domain.User) error {
	tok := a.begin(keyAgentStats)
	stats, err := a.api.AgentStats(ctx, user.ID.Value)
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch agent stats")
		stats = domain.AgentStats{}
	}

	a.commit(tok, func(s *State) { s.Agent.Stats = stats })
	return nil
}

func (a *App) loadAgentSellers(ctx context.Context) error {
	tok := a.begin(keyAgentSellers)
	sellers, err := a.api.AgentSellers(ctx)
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch agent sellers")
		sellers = nil
	}

	a.commit(tok, func(s *State) { s.Agent.Sellers = sellers })
	return nil
}

// DeactivateSeller asks for confirmation before deactivating the account.
// A declined confirmation returns ErrCancelled without a request.
func (a *App) DeactivateSeller(ctx context.Context, userID string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	prompter := a.currentPrompter()
	if prompter == nil {
		return domain.ErrCancelled
	}

	ok, err := prompter.Confirm(ctx, deactivateQuestion)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCancelled
	}

	if err := a.api.DeactivateUser(ctx, userID); err != nil {
		return err
	}

	return a.loadAgentSellers(ctx)
}
