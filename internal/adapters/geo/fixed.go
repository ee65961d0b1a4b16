package geo

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/jiranismart/jirani-cli/internal/ports"
)

// Fixed always reports the configured coordinate.
type Fixed struct {
	Coordinate domain.Coordinate
}

var _ ports.Locator = Fixed{}

func (f Fixed) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, &domain.PositionError{Code: domain.PositionTimeout, Message: err.Error()}
	}

	if !f.Coordinate.Finite() {
		return domain.Coordinate{}, &domain.PositionError{Code: domain.PositionUnavailable, Message: "configured coordinate is not finite"}
	}

	return f.Coordinate, nil
}
