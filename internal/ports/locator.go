package ports

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

// Locator produces a one-shot position fix. Failures should be
// *domain.PositionError so callers can classify them.
type Locator interface {
	CurrentPosition(ctx context.Context) (domain.Coordinate, error)
}
