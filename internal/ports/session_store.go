package ports

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

// SessionStore holds the single persisted session slot. Load returns nil
// when nothing valid is stored.
type SessionStore interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
