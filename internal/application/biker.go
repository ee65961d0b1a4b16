package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

const (
	keyBikerStats = "biker.stats"
	keyBikerJobs  = "biker.jobs"

	defaultSubscriptionAmount = 500
	subscriptionPaymentType   = "subscription"
)

func (a *App) loadBiker(ctx context.Context, view domain.ViewID) error {
	switch view {
	case domain.ViewJobs:
		return a.loadBikerJobs(ctx)
	case domain.ViewSubscription:
		return nil
	default:
		return a.loadBikerStats(ctx)
	}
}

func (a *App) loadBikerStats(ctx context.Context) error {
	tok := a.begin(keyBikerStats)
	stats, err := a.api.BikerStats(ctx)
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch biker stats")
		stats = domain.BikerStats{}
	}

	a.commit(tok, func(s *State) { s.Biker.Stats = stats })
	return nil
}

func (a *App) loadBikerJobs(ctx context.Context) error {
	tok := a.begin(keyBikerJobs)
	jobs, err := a.api.AvailableOrders(ctx)
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch available jobs")
		jobs = nil
	}

	a.commit(tok, func(s *State) { s.Biker.Jobs = jobs })
	return nil
}

// LoadJobs refreshes the available jobs.
func (a *App) LoadJobs(ctx context.Context) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	return a.loadBikerJobs(ctx)
}

func (a *App) AcceptJob(ctx context.Context, orderID string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	if err := a.api.AcceptOrder(ctx, orderID); err != nil {
		return err
	}

	return a.loadBikerJobs(ctx)
}

// PickupJob marks the order on the way. The job list is left as is.
func (a *App) PickupJob(ctx context.Context, orderID string) (string, error) {
	if _, err := a.currentUser(); err != nil {
		return "", err
	}

	if err := a.api.PickupOrder(ctx, orderID); err != nil {
		return "", err
	}

	return fmt.Sprintf("Order #%s marked on_the_way.", orderID), nil
}

// CompleteJob takes a fresh location fix before reporting delivery so the
// backend gets the drop-off position.
func (a *App) CompleteJob(ctx context.Context, orderID string) (string, error) {
	if _, err := a.currentUser(); err != nil {
		return "", err
	}

	at := a.EnsureLocation(ctx)
	if err := a.api.CompleteOrder(ctx, orderID, at); err != nil {
		return "", err
	}

	alert := fmt.Sprintf("Order #%s completed.", orderID)
	if err := a.loadBikerJobs(ctx); err != nil {
		return alert, err
	}

	return alert, nil
}

// Subscribe sends an STK push for the biker subscription. A blank amount
// charges the default fee; an explicit zero is sent as is.
func (a *App) Subscribe(ctx context.Context, form SubscriptionForm) (string, error) {
	user, err := a.currentUser()
	if err != nil {
		return "", err
	}

	form.Phone = strings.TrimSpace(form.Phone)
	if err := forms.validate(form); err != nil {
		return "", err
	}

	amount := float64(defaultSubscriptionAmount)
	if form.Amount != nil {
		amount = *form.Amount
	}

	checkoutID, err := a.api.STKPush(ctx, domain.STKPushRequest{
		Phone:  form.Phone,
		Amount: amount,
		UserID: user.ID,
		Type:   subscriptionPaymentType,
	})
	if err != nil {
		return "", err
	}

	return "STK push sent. Checkout ID: " + orDefault(checkoutID, "N/A"), nil
}
