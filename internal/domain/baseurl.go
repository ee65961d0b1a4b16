package domain

import (
	"net/url"
	"strings"
)

const (
	DefaultOrigin  = "http://localhost"
	defaultAPIPort = "5000"
	apiSuffix      = "/api"
)

// NormalizeBaseURL trims the raw base URL and makes sure it ends in /api.
// An empty value falls back to <protocol>//<host>:5000/api derived from
// origin, keeping https and defaulting everything else to http.
func NormalizeBaseURL(raw, origin string) string {
	value := strings.TrimRight(strings.TrimSpace(raw), "/")
	if value == "" {
		protocol, host := originParts(origin)
		return protocol + "//" + host + ":" + defaultAPIPort + apiSuffix
	}

	if strings.HasSuffix(value, apiSuffix) {
		return value
	}

	return value + apiSuffix
}

// ResolveBaseURL applies override-then-configured precedence before
// normalizing.
func ResolveBaseURL(override, configured, origin string) string {
	if strings.TrimSpace(override) != "" {
		return NormalizeBaseURL(override, origin)
	}

	return NormalizeBaseURL(configured, origin)
}

func originParts(origin string) (string, string) {
	protocol, host := "http:", "localhost"

	parsed, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return protocol, host
	}
	if parsed.Scheme == "https" {
		protocol = "https:"
	}
	if hostname := parsed.Hostname(); hostname != "" {
		host = hostname
	}

	return protocol, host
}
