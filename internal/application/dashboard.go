package application

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

// Navigate switches the active view, coercing it into the role's menu, and
// loads the new view's data.
func (a *App) Navigate(ctx context.Context, view domain.ViewID) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	a.update(func(s *State) {
		s.View = domain.ResolveView(user.Role, view)
		s.Alert = ""
	})

	return a.LoadView(ctx)
}

// LoadView fetches whatever the active view shows. Fetch failures leave the
// affected collection empty; only a missing session is an error.
func (a *App) LoadView(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	var view domain.ViewID
	a.update(func(s *State) {
		s.View = domain.ResolveView(user.Role, s.View)
		view = s.View
	})

	switch user.Role.Family() {
	case domain.FamilyBuyer:
		return a.loadBuyer(ctx, view)
	case domain.FamilySeller:
		return a.loadSeller(ctx, user, view)
	case domain.FamilyBiker:
		return a.loadBiker(ctx, view)
	case domain.FamilyAssistant:
		return a.loadAssistant(ctx, view)
	case domain.FamilyAgent:
		return a.loadAgent(ctx, user, view)
	case domain.FamilyUnknown:
		return nil
	default:
		return nil
	}
}

func (a *App) ToggleDiagnostics() {
	a.update(func(s *State) { s.DiagnosticsOpen = !s.DiagnosticsOpen })
}

func (a *App) SetDiagnostics(open bool) {
	a.update(func(s *State) { s.DiagnosticsOpen = open })
}
