package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/jiranismart/jirani-cli/internal/ports"
)

// IPLookup resolves an approximate position from an IP geolocation service
// returning {lat, lon} or {latitude, longitude}.
type IPLookup struct {
	URL        string
	HTTPClient *http.Client
}

var _ ports.Locator = (*IPLookup)(nil)

type ipLookupPayload struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     bool     `json:"error"`
	Reason    string   `json:"reason"`
	Message   string   `json:"message"`
}

func (l *IPLookup) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	client := l.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return domain.Coordinate{}, &domain.PositionError{Code: domain.PositionUnavailable, Message: fmt.Sprintf("create location request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return domain.Coordinate{}, classifyTransportError(ctx, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.Coordinate{}, classifyTransportError(ctx, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.Coordinate{}, &domain.PositionError{
			Code:    domain.PositionPermissionDenied,
			Message: fmt.Sprintf("location lookup denied (%d)", resp.StatusCode),
		}
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return domain.Coordinate{}, &domain.PositionError{
			Code:    domain.PositionUnavailable,
			Message: fmt.Sprintf("location lookup failed (%d)", resp.StatusCode),
		}
	}

	var payload ipLookupPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Coordinate{}, &domain.PositionError{Code: domain.PositionUnavailable, Message: fmt.Sprintf("decode location response: %v", err)}
	}
	if payload.Error {
		message := payload.Reason
		if message == "" {
			message = payload.Message
		}
		return domain.Coordinate{}, &domain.PositionError{Code: domain.PositionUnavailable, Message: message}
	}

	lat, lng := firstOf(payload.Lat, payload.Latitude), firstOf(payload.Lon, payload.Longitude)
	if lat == nil || lng == nil {
		return domain.Coordinate{}, &domain.PositionError{Code: domain.PositionUnavailable, Message: "location response has no coordinate"}
	}

	coordinate := domain.Coordinate{Lat: *lat, Lng: *lng}
	if !coordinate.Finite() {
		return domain.Coordinate{}, &domain.PositionError{Code: domain.PositionUnavailable, Message: "location response has no coordinate"}
	}

	return coordinate, nil
}

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &domain.PositionError{Code: domain.PositionTimeout, Message: "location lookup timed out"}
	}

	return &domain.PositionError{Code: domain.PositionUnavailable, Message: err.Error()}
}

func firstOf(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}

	return nil
}
