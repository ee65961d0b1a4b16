package domain

import (
	"fmt"
	"math"
)

type Coordinate struct {
	Lat float64
	Lng float64
}

// DefaultCoordinate is Nairobi CBD, used until a real fix is obtained.
var DefaultCoordinate = Coordinate{Lat: -1.286389, Lng: 36.817223}

func (c Coordinate) Finite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) && !math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}

func (c Coordinate) Format(decimals int) string {
	return FormatFixed(c.Lat, decimals) + ", " + FormatFixed(c.Lng, decimals)
}

type GeoStatus int

const (
	GeoNotRequested GeoStatus = iota
	GeoEnabled
	GeoPermissionDenied
	GeoPositionUnavailable
	GeoTimeout
	GeoUnavailable
	GeoUnsupported
)

func (s GeoStatus) String() string {
	switch s {
	case GeoEnabled:
		return "Enabled"
	case GeoPermissionDenied:
		return "Permission denied"
	case GeoPositionUnavailable:
		return "Position unavailable"
	case GeoTimeout:
		return "Location timeout"
	case GeoUnavailable:
		return "Location unavailable"
	case GeoUnsupported:
		return "Unsupported in this browser"
	default:
		return "Not requested"
	}
}

// Provider error codes, numbered like the platform geolocation API.
const (
	PositionPermissionDenied = 1
	PositionUnavailable      = 2
	PositionTimeout          = 3
)

const (
	GeoUnsupportedMessage = "Geolocation API is not available."
	GeoDefaultHint        = "Allow location permission in your browser and use HTTPS (or localhost) for GPS."
)

type PositionError struct {
	Code    int
	Message string
}

func (e *PositionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("position error (code %d)", e.Code)
	}

	return e.Message
}

func StatusForCode(code int) GeoStatus {
	switch code {
	case PositionPermissionDenied:
		return GeoPermissionDenied
	case PositionUnavailable:
		return GeoPositionUnavailable
	case PositionTimeout:
		return GeoTimeout
	default:
		return GeoUnavailable
	}
}
