package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/jiranismart/jirani-cli/internal/ports"
	"github.com/rs/zerolog"
)

const maxResponseBytes = 4 << 20

type Options struct {
	HTTPClient *http.Client
	// DefaultBaseURL is the configured base, used when no override is saved.
	DefaultBaseURL string
	// Origin stands in for the page origin when both bases are empty.
	Origin    string
	Logger    zerolog.Logger
	Metrics   *Metrics
	RequestID func() string
}

type Client struct {
	httpClient     *http.Client
	sessions       ports.SessionStore
	settings       ports.SettingsStore
	defaultBaseURL string
	origin         string
	logger         zerolog.Logger
	metrics        *Metrics
	requestID      func() string
}

var _ ports.MarketplaceAPI = (*Client)(nil)

func NewClient(sessions ports.SessionStore, settings ports.SettingsStore, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	origin := opts.Origin
	if origin == "" {
		origin = domain.DefaultOrigin
	}

	requestID := opts.RequestID
	if requestID == nil {
		requestID = uuid.NewString
	}

	return &Client{
		httpClient:     httpClient,
		sessions:       sessions,
		settings:       settings,
		defaultBaseURL: opts.DefaultBaseURL,
		origin:         origin,
		logger:         opts.Logger,
		metrics:        opts.Metrics,
		requestID:      requestID,
	}
}

// BaseURL resolves the saved override, then the configured default, then the
// origin-derived fallback.
func (c *Client) BaseURL(ctx context.Context) string {
	override := ""
	if c.settings != nil {
		settings, err := c.settings.Get(ctx)
		if err != nil {
			c.logger.Debug().Err(err).Msg("read settings for base url")
		} else {
			override = settings.APIBaseOverride
		}
	}

	return domain.ResolveBaseURL(override, c.defaultBaseURL, c.origin)
}

func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// AuthHeaders carries the bearer token when a session exists, plus the JSON
// content type when asked.
func (c *Client) AuthHeaders(ctx context.Context, includeJSON bool) http.Header {
	headers := http.Header{}
	if includeJSON {
		headers.Set("Content-Type", "application/json")
	}

	if c.sessions == nil {
		return headers
	}

	session, err := c.sessions.Load(ctx)
	if err != nil {
		c.logger.Debug().Err(err).Msg("load session for auth header")
		return headers
	}
	if session != nil && session.Token != "" {
		headers.Set("Authorization", "Bearer "+session.Token)
	}

	return headers
}

// Request describes one API call. Route is the path template used as the
// metrics label; Path is the concrete path with query.
type Request struct {
	Method string
	Route  string
	Path   string
	Auth   bool
	JSON   any
	Form   []FormField
	// FailureMessage replaces the default failure text for multipart calls,
	// which only honour body.message.
	FailureMessage string
}

type FormField struct {
	Name  string
	Value string
}

// Do issues a single attempt. Non-2xx responses and transport failures come
// back as *Error; a successful body is decoded into out when non-nil.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return err
	}

	route := req.Route
	if route == "" {
		route = req.Path
	}
	requestID := httpReq.Header.Get("X-Request-ID")
	started := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(req.Method, route, outcomeNetworkError, time.Since(started).Seconds())
		c.logger.Warn().Err(err).Str("method", req.Method).Str("route", route).Str("request_id", requestID).Msg("api request failed")
		return &Error{Message: err.Error(), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(started)
	if err != nil {
		c.metrics.observe(req.Method, route, outcomeNetworkError, elapsed.Seconds())
		return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("read response body: %v", err), Err: err}
	}

	body := normalizeBody(raw)
	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices

	c.logger.Debug().
		Str("method", req.Method).
		Str("route", route).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Str("request_id", requestID).
		Msg("api request")

	if !ok {
		c.metrics.observe(req.Method, route, outcomeHTTPError, elapsed.Seconds())
		message := failureMessage(body, resp.StatusCode, req.FailureMessage)
		c.logger.Warn().Str("method", req.Method).Str("route", route).Int("status", resp.StatusCode).Str("request_id", requestID).Msg(message)
		return &Error{Status: resp.StatusCode, Message: message}
	}

	c.metrics.observe(req.Method, route, outcomeOK, elapsed.Seconds())

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", route, err)
	}

	return nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)

	switch {
	case req.Form != nil:
		buf, ct, err := encodeForm(req.Form)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.JSON != nil:
		encoded, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", req.Path, err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.BaseURL(ctx)+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", req.Path, err)
	}

	var headers http.Header
	if req.Auth {
		headers = c.AuthHeaders(ctx, req.JSON != nil)
	} else {
		headers = http.Header{}
		if req.JSON != nil {
			headers.Set("Content-Type", "application/json")
		}
	}
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}

	for key, values := range headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", c.requestID())

	return httpReq, nil
}

func encodeForm(fields []FormField) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for _, field := range fields {
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", field.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}

// normalizeBody turns any response text into a JSON document: empty becomes
// {}, non-JSON becomes {"message": text}.
func normalizeBody(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	if json.Valid(raw) {
		return raw
	}

	message := string(raw)
	if message == "" {
		message = "Unknown response"
	}
	encoded, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return []byte(`{"message":"Unknown response"}`)
	}

	return encoded
}

func failureMessage(body []byte, status int, fallback string) string {
	var fields map[string]any
	_ = json.Unmarshal(body, &fields)

	if message, ok := truthyText(fields["message"]); ok {
		return message
	}
	if fallback != "" {
		return fallback
	}
	if message, ok := truthyText(fields["error"]); ok {
		return message
	}

	return defaultFailureMessage(status)
}

func truthyText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case float64:
		return domain.FormatNumber(v), v != 0
	case bool:
		return "true", v
	case nil:
		return "", false
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(encoded), true
	}
}
