package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

type ActionID string

const (
	ActionNavigate        ActionID = "navigate"
	ActionEnableGPS       ActionID = "geo.enable"
	ActionRefreshLocation ActionID = "geo.refresh"
	ActionRefreshSellers  ActionID = "buyer.refresh"
	ActionSearch          ActionID = "buyer.search"
	ActionCategory        ActionID = "buyer.category"
	ActionViewMap         ActionID = "buyer.map"
	ActionNearestBiker    ActionID = "buyer.nearest-biker"
	ActionSendSOS         ActionID = "buyer.sos"
	ActionAddProduct      ActionID = "seller.add-product"
	ActionUpdateStock     ActionID = "seller.update-stock"
	ActionDeleteProduct   ActionID = "seller.delete-product"
	ActionLinkOrder       ActionID = "seller.link"
	ActionAcceptJob       ActionID = "biker.accept"
	ActionPickupJob       ActionID = "biker.pickup"
	ActionCompleteJob     ActionID = "biker.complete"
	ActionSubscribe       ActionID = "biker.subscribe"
	ActionLoadSOS         ActionID = "assistant.load"
	ActionAcceptSOS       ActionID = "assistant.accept"
	ActionCompleteSOS     ActionID = "assistant.complete"
	ActionDeactivate      ActionID = "agent.deactivate"
)

// Action is one affordance on the screen. Ref names the record it applies
// to, or the target view for navigation.
type Action struct {
	ID       ActionID
	Label    string
	Ref      string
	Disabled bool
}

var ErrUnknownAction = errors.New("unknown action")

// Perform runs an on-screen action, asking the prompter for any form input.
// The outcome is left in State.Alert. Cancelled prompts and stale product
// references are silent no-ops.
func (a *App) Perform(ctx context.Context, action Action) error {
	if action.Disabled {
		if action.ID == ActionLinkOrder {
			return a.reportAlert("", errNoBiker())
		}
		return nil
	}

	alert, err := a.perform(ctx, action)
	return a.reportAlert(alert, err)
}

func (a *App) reportAlert(alert string, err error) error {
	switch {
	case errors.Is(err, domain.ErrCancelled), errors.Is(err, domain.ErrProductNotFound):
		a.logger.Debug().Err(err).Msg("action skipped")
		return nil
	case err != nil:
		a.setAlert(err.Error())
		return err
	default:
		a.setAlert(alert)
		return nil
	}
}

func (a *App) perform(ctx context.Context, action Action) (string, error) {
	switch action.ID {
	case ActionNavigate:
		return "", a.Navigate(ctx, domain.ViewID(action.Ref))
	case ActionEnableGPS, ActionRefreshLocation:
		a.EnsureLocation(ctx)
		return "", a.LoadView(ctx)
	case ActionRefreshSellers:
		return "", a.LoadMarketplace(ctx)
	case ActionSearch:
		values, err := a.ask(ctx, LabelSearch)
		if err != nil {
			return "", err
		}
		// the failure is shown in place of the results
		_ = a.SearchProducts(ctx, values[0])
		return "", nil
	case ActionCategory:
		values, err := a.ask(ctx, LabelCategory)
		if err != nil {
			return "", err
		}
		err = a.SelectCategory(ctx, values[0])
		var validation *domain.ValidationError
		if err != nil && !errors.As(err, &validation) {
			// search failures are shown in place of the results
			return "", nil
		}
		return "", err
	case ActionViewMap:
		return "", a.ShowMap(action.Ref)
	case ActionNearestBiker:
		return a.NearestBikerFor(ctx, action.Ref)
	case ActionSendSOS:
		values, err := a.ask(ctx, LabelIssue, LabelRegion, LabelPhone, LabelVehicle)
		if err != nil {
			return "", err
		}
		return a.SendSOS(ctx, SOSForm{Issue: values[0], Region: values[1], Phone: values[2], VehicleDetails: values[3]})
	case ActionAddProduct:
		values, err := a.ask(ctx, LabelProductName, LabelCategory, LabelPrice, LabelStock, LabelDescription)
		if err != nil {
			return "", err
		}
		return "", a.AddProduct(ctx, ProductInput{
			Name: values[0], Category: values[1], Price: values[2], StockQuantity: values[3], Description: values[4],
		})
	case ActionUpdateStock:
		return "", a.UpdateStock(ctx, action.Ref)
	case ActionDeleteProduct:
		return "", a.DeleteProduct(ctx, action.Ref)
	case ActionLinkOrder:
		return a.LinkOrder(ctx, action.Ref)
	case ActionAcceptJob:
		return "", a.AcceptJob(ctx, action.Ref)
	case ActionPickupJob:
		return a.PickupJob(ctx, action.Ref)
	case ActionCompleteJob:
		return a.CompleteJob(ctx, action.Ref)
	case ActionSubscribe:
		values, err := a.ask(ctx, LabelPhone, LabelAmount)
		if err != nil {
			return "", err
		}
		var amount *float64
		if strings.TrimSpace(values[1]) != "" {
			parsed, ok := parseAmount(values[1])
			if !ok {
				return "", domain.NewValidationError(msgInvalidSTKAmount)
			}
			amount = &parsed
		}
		return a.Subscribe(ctx, SubscriptionForm{Phone: values[0], Amount: amount})
	case ActionLoadSOS:
		return "", a.LoadNearbySOS(ctx)
	case ActionAcceptSOS:
		return "", a.AcceptSOS(ctx, action.Ref)
	case ActionCompleteSOS:
		return "", a.CompleteSOS(ctx, action.Ref)
	case ActionDeactivate:
		return "", a.DeactivateSeller(ctx, action.Ref)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, action.ID)
	}
}

// ask prompts for each label in turn.
func (a *App) ask(ctx context.Context, labels ...string) ([]string, error) {
	prompter := a.currentPrompter()
	if prompter == nil {
		return nil, domain.ErrCancelled
	}

	values := make([]string, 0, len(labels))
	for _, label := range labels {
		value, err := prompter.Prompt(ctx, label)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, nil
}
