package ports

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

type SettingsStore interface {
	Get(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
