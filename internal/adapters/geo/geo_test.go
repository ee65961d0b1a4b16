package geo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedReturnsConfiguredCoordinate(t *testing.T) {
	t.Parallel()

	got, err := Fixed{Coordinate: domain.Coordinate{Lat: -4.05, Lng: 39.66}}.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: -4.05, Lng: 39.66}, got)

	_, err = Fixed{Coordinate: domain.Coordinate{Lat: math.NaN()}}.CurrentPosition(context.Background())
	assertPositionCode(t, err, domain.PositionUnavailable)
}

func TestIPLookupDecodesBothPayloadShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want domain.Coordinate
	}{
		{name: "lat lon", body: `{"lat":-0.1,"lon":34.75}`, want: domain.Coordinate{Lat: -0.1, Lng: 34.75}},
		{name: "latitude longitude", body: `{"latitude":-1.5,"longitude":37.2}`, want: domain.Coordinate{Lat: -1.5, Lng: 37.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			got, err := (&IPLookup{URL: server.URL}).CurrentPosition(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIPLookupMapsFailuresToCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		code   int
	}{
		{name: "forbidden is permission denied", status: http.StatusForbidden, body: `{}`, code: domain.PositionPermissionDenied},
		{name: "unauthorized is permission denied", status: http.StatusUnauthorized, body: `{}`, code: domain.PositionPermissionDenied},
		{name: "server error is unavailable", status: http.StatusBadGateway, body: `{}`, code: domain.PositionUnavailable},
		{name: "missing coordinate is unavailable", status: http.StatusOK, body: `{"city":"Nairobi"}`, code: domain.PositionUnavailable},
		{name: "provider error flag is unavailable", status: http.StatusOK, body: `{"error":true,"reason":"RateLimited"}`, code: domain.PositionUnavailable},
		{name: "garbage is unavailable", status: http.StatusOK, body: `<html>`, code: domain.PositionUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			_, err := (&IPLookup{URL: server.URL}).CurrentPosition(context.Background())
			assertPositionCode(t, err, tt.code)
		})
	}
}

func TestIPLookupDeadlineIsTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := (&IPLookup{URL: server.URL}).CurrentPosition(ctx)
	assertPositionCode(t, err, domain.PositionTimeout)
}

func assertPositionCode(t *testing.T, err error, code int) {
	t.Helper()

	require.Error(t, err)
	var positionErr *domain.PositionError
	require.True(t, errors.As(err, &positionErr), "want *domain.PositionError, got %T", err)
	assert.Equal(t, code, positionErr.Code)
}
