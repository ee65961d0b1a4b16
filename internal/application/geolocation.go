package application

import (
	"context"
	"errors"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

// EnsureLocation asks the locator for a fresh fix. It never fails: on any
// error the geo status and message are updated and the last known
// coordinate is returned.
func (a *App) EnsureLocation(ctx context.Context) domain.Coordinate {
	if a.locator == nil {
		var last domain.Coordinate
		a.update(func(s *State) {
			s.Geo.Status = domain.GeoUnsupported
			s.Geo.Error = domain.GeoUnsupportedMessage
			last = s.Geo.Location
		})
		return last
	}

	fixCtx, cancel := context.WithTimeout(ctx, a.geoTimeout)
	defer cancel()

	coordinate, err := a.locator.CurrentPosition(fixCtx)
	if err == nil && !coordinate.Finite() {
		err = &domain.PositionError{Code: domain.PositionUnavailable}
	}

	if err != nil {
		code := 0
		message := ""

		var posErr *domain.PositionError
		switch {
		case errors.As(err, &posErr):
			code = posErr.Code
			message = posErr.Message
		case errors.Is(err, context.DeadlineExceeded):
			code = domain.PositionTimeout
		default:
			message = err.Error()
		}
		if message == "" {
			message = domain.GeoDefaultHint
		}

		status := domain.StatusForCode(code)
		a.logger.Info().Err(err).Str("status", status.String()).Msg("location fix failed")

		var last domain.Coordinate
		a.update(func(s *State) {
			s.Geo.Status = status
			s.Geo.Error = message
			last = s.Geo.Location
		})
		return last
	}

	a.update(func(s *State) {
		s.Geo = GeoState{Location: coordinate, Status: domain.GeoEnabled}
	})

	return coordinate
}
