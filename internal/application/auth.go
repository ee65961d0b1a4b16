package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jiranismart/jirani-cli/internal/domain"
)

// Bootstrap restores the persisted session and opens the dashboard on the
// requested view, coerced into the role's menu. It returns ErrNoSession when
// the user has to sign in first.
func (a *App) Bootstrap(ctx context.Context, requested domain.ViewID) error {
	session, err := a.sessions.Load(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("load session")
		a.resetSession(nil, "")
		return fmt.Errorf("%w: %w", domain.ErrNoSession, err)
	}
	if !session.Valid() {
		a.resetSession(nil, "")
		return domain.ErrNoSession
	}

	view := domain.ResolveView(session.User.Role, requested)
	a.resetSession(session, view)

	if err := a.LoadView(ctx); err != nil {
		return err
	}

	// a failed ping is shown in diagnostics, never fatal
	_ = a.Ping(ctx)

	return nil
}

func (a *App) Login(ctx context.Context, form LoginForm) error {
	form.Phone = domain.NormalizePhone(form.Phone)
	form.Role = strings.TrimSpace(form.Role)

	if err := forms.validate(form); err != nil {
		return a.formFailed(err)
	}

	result, err := a.api.Login(ctx, domain.LoginRequest{Phone: form.Phone, Password: form.Password, Role: form.Role})
	if err != nil {
		return a.formFailed(err)
	}

	accountRole := ""
	if result.User != nil {
		accountRole = string(result.User.Role)
	}
	if !domain.SameRole(accountRole, form.Role) {
		return a.formFailed(&domain.ValidationError{
			Message: fmt.Sprintf(msgRoleMismatchFmt, accountRole),
			Err:     domain.ErrRoleMismatch,
		})
	}

	stats := result.Stats
	if stats == nil {
		stats = map[string]any{}
	}
	session := domain.Session{Token: result.Token, User: result.User, Stats: stats}
	if !session.Valid() {
		return a.formFailed(errors.New("login response carried no token"))
	}

	if err := a.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	a.resetSession(&session, domain.DefaultViewFor(session.User.Role))
	a.logger.Info().Str("role", string(session.User.Role)).Msg("signed in")

	return nil
}

func (a *App) Register(ctx context.Context, form RegisterForm) error {
	form.Phone = domain.NormalizePhone(form.Phone)

	if err := forms.validate(form); err != nil {
		return a.formFailed(err)
	}

	role := form.Role
	if role == "" {
		role = string(domain.RoleBuyer)
	}

	req := domain.RegisterRequest{
		Name:        strings.TrimSpace(form.Name),
		Phone:       form.Phone,
		Password:    form.Password,
		Role:        role,
		ExtraDetail: extraDetail(role, form),
	}
	if err := a.api.Register(ctx, req); err != nil {
		return a.formFailed(err)
	}

	a.setNotice(msgRegistered, false)
	return nil
}

func extraDetail(role string, form RegisterForm) string {
	switch domain.NormalizeRoleName(role) {
	case "seller":
		category := form.BusinessCategory
		if category == "" {
			category = domain.CategoryGeneral
		}
		return strings.TrimSpace(category)
	case "biker", "agent", "mechanic":
		return strings.TrimSpace(form.Detail)
	default:
		return ""
	}
}

// ForgotPassword requests a verification code. Requests inside the resend
// cooldown fail with ErrResendCooldown.
func (a *App) ForgotPassword(ctx context.Context, form ForgotForm) error {
	form.Phone = domain.NormalizePhone(form.Phone)

	if err := forms.validate(form); err != nil {
		return a.formFailed(err)
	}

	settings, err := a.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	now := a.clock.Now()
	if remaining := settings.ResendRemaining(now); remaining > 0 {
		seconds := int(math.Ceil(remaining.Seconds()))
		return a.formFailed(&domain.ValidationError{
			Message: fmt.Sprintf("Resend available in %ds.", seconds),
			Err:     domain.ErrResendCooldown,
		})
	}

	if err := a.api.ForgotPassword(ctx, form.Phone); err != nil {
		return a.formFailed(err)
	}

	settings.ResetCodeSentAt = now
	if err := a.settings.Save(ctx, settings); err != nil {
		a.logger.Warn().Err(err).Msg("record resend cooldown")
	}

	a.setNotice(msgCodeSent, false)
	return nil
}

func (a *App) ResetPassword(ctx context.Context, form ResetForm) error {
	form.Phone = domain.NormalizePhone(form.Phone)
	form.Code = strings.TrimSpace(form.Code)

	if err := forms.validateReset(form); err != nil {
		return a.formFailed(err)
	}

	req := domain.ResetPasswordRequest{Phone: form.Phone, Code: form.Code, NewPassword: form.NewPassword}
	if err := a.api.ResetPassword(ctx, req); err != nil {
		return a.formFailed(err)
	}

	settings, err := a.settings.Get(ctx)
	if err == nil && !settings.ResetCodeSentAt.IsZero() {
		settings.ResetCodeSentAt = time.Time{}
		err = a.settings.Save(ctx, settings)
	}
	if err != nil {
		a.logger.Warn().Err(err).Msg("clear resend cooldown")
	}

	a.setNotice(msgPasswordUpdated, false)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	a.resetSession(nil, "")
	return nil
}

type SessionInfo struct {
	User  domain.User
	Stats map[string]any
	// ExpiresAt is read from the token's exp claim without verifying it.
	// Zero when the token is opaque or carries no expiry.
	ExpiresAt time.Time
}

func (i SessionInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Whoami describes the stored session. The token is never validated; only
// its expiry is peeked at for display.
func (a *App) Whoami(ctx context.Context) (SessionInfo, error) {
	session, err := a.sessions.Load(ctx)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("load session: %w", err)
	}
	if !session.Valid() {
		return SessionInfo{}, domain.ErrNoSession
	}

	return SessionInfo{
		User:      *session.User,
		Stats:     session.Stats,
		ExpiresAt: tokenExpiry(session.Token),
	}, nil
}

func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}

func (a *App) setNotice(text string, isError bool) {
	a.update(func(s *State) { s.Notice = Notice{Text: text, Error: isError} })
}

// formFailed records err as the inline form notice and returns it.
func (a *App) formFailed(err error) error {
	a.setNotice(err.Error(), true)
	return err
}
