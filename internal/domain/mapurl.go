package domain

import (
	"math"
	"strings"
)

const (
	defaultMapSpan = 0.02
	minMapSpan     = 0.005
)

// MapEmbedURL builds an OpenStreetMap embed URL centred on lat/lng. A span
// of zero selects the default box; it never drops below minMapSpan degrees.
// Non-finite input yields an empty string.
func MapEmbedURL(lat, lng, span float64) string {
	c := Coordinate{Lat: lat, Lng: lng}
	if !c.Finite() {
		return ""
	}

	if span == 0 || math.IsNaN(span) {
		span = defaultMapSpan
	}
	span = math.Max(minMapSpan, span)

	left := lng - span
	right := lng + span
	top := lat + span
	bottom := lat - span

	var b strings.Builder
	b.WriteString("https://www.openstreetmap.org/export/embed.html?bbox=")
	b.WriteString(joinEscaped(left, bottom, right, top))
	b.WriteString("&layer=mapnik&marker=")
	b.WriteString(joinEscaped(lat, lng))
	return b.String()
}

func MapLinkURL(lat, lng float64) string {
	c := Coordinate{Lat: lat, Lng: lng}
	if !c.Finite() {
		return ""
	}

	la, ln := FormatNumber(lat), FormatNumber(lng)
	return "https://www.openstreetmap.org/?mlat=" + la + "&mlon=" + ln + "#map=15/" + la + "/" + ln
}

func joinEscaped(values ...float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatNumber(v)
	}

	return strings.Join(parts, "%2C")
}
