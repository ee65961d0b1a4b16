package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jiranismart/jirani-cli/internal/adapters/api/apitest"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessions struct {
	session *domain.Session
}

func (m *memorySessions) Load(context.Context) (*domain.Session, error) { return m.session, nil }
func (m *memorySessions) Save(_ context.Context, s domain.Session) error {
	m.session = &s
	return nil
}
func (m *memorySessions) Clear(context.Context) error {
	m.session = nil
	return nil
}

type memorySettings struct {
	settings domain.Settings
	err      error
}

func (m *memorySettings) Get(context.Context) (domain.Settings, error) { return m.settings, m.err }
func (m *memorySettings) Save(_ context.Context, s domain.Settings) error {
	m.settings = s
	return nil
}

func newTestClient(baseURL string, token string) *Client {
	sessions := &memorySessions{}
	if token != "" {
		sessions.session = &domain.Session{Token: token, User: &domain.User{Role: domain.RoleSeller}}
	}

	return NewClient(sessions, &memorySettings{}, Options{
		DefaultBaseURL: baseURL,
		Logger:         zerolog.Nop(),
		Metrics:        NewMetrics(),
		RequestID:      func() string { return "req-fixed" },
	})
}

func TestBaseURLResolution(t *testing.T) {
	t.Parallel()

	settings := &memorySettings{}
	client := NewClient(nil, settings, Options{DefaultBaseURL: "http://configured:5000", Origin: "https://web.example"})
	ctx := context.Background()

	assert.Equal(t, "http://configured:5000/api", client.BaseURL(ctx))

	settings.settings.APIBaseOverride = "http://x:5000"
	assert.Equal(t, "http://x:5000/api", client.BaseURL(ctx))

	bare := NewClient(nil, &memorySettings{}, Options{Origin: "https://web.example"})
	assert.Equal(t, "https://web.example:5000/api", bare.BaseURL(ctx))

	broken := NewClient(nil, &memorySettings{err: errors.New("disk gone")}, Options{DefaultBaseURL: "http://configured"})
	assert.Equal(t, "http://configured/api", broken.BaseURL(ctx))
}

func TestAuthHeaders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	anonymous := newTestClient("http://x", "")
	headers := anonymous.AuthHeaders(ctx, true)
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Empty(t, headers.Get("Authorization"))

	signedIn := newTestClient("http://x", "tok-9")
	headers = signedIn.AuthHeaders(ctx, false)
	assert.Equal(t, "Bearer tok-9", headers.Get("Authorization"))
	assert.Empty(t, headers.Get("Content-Type"))
}

func TestDoNormalizesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "message wins", status: http.StatusBadRequest, body: `{"message":"Invalid credentials","error":"ignored"}`, want: "Invalid credentials"},
		{name: "error field", status: http.StatusUnauthorized, body: `{"error":"Token expired"}`, want: "Token expired"},
		{name: "empty body", status: http.StatusInternalServerError, body: ``, want: "Request failed (500)"},
		{name: "plain text body", status: http.StatusBadGateway, body: `upstream down`, want: "upstream down"},
		{name: "json without message", status: http.StatusNotFound, body: `{"ok":false}`, want: "Request failed (404)"},
		{name: "array body", status: http.StatusConflict, body: `[1,2]`, want: "Request failed (409)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			err := newTestClient(server.URL, "").Do(context.Background(), Request{Method: http.MethodGet, Path: "/thing"}, nil)
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestDoTreatsEmptyAndTextSuccessBodies(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/text" {
			_, _ = fmt.Fprint(w, "pong")
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")

	var empty map[string]any
	require.NoError(t, client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/empty"}, &empty))
	assert.Empty(t, empty)

	var text map[string]any
	require.NoError(t, client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/text"}, &text))
	assert.Equal(t, "pong", text["message"])
}

func TestDoSurfacesTransportErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	err := newTestClient(url, "").Do(context.Background(), Request{Method: http.MethodGet, Path: "/gone"}, nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestRequestsCarryRequestIDAndAuth(t *testing.T) {
	t.Parallel()

	backend := apitest.New(t)
	client := newTestClient(backend.BaseURL(), "tok-7")

	_, err := client.BikerStats(context.Background())
	require.NoError(t, err)

	reqs := backend.RequestsTo(http.MethodGet, "/orders/stats")
	require.Len(t, reqs, 1)
	assert.Equal(t, "req-fixed", reqs[0].Header.Get("X-Request-ID"))
	assert.Equal(t, "Bearer tok-7", reqs[0].Header.Get("Authorization"))
	assert.Equal(t, "application/json", reqs[0].Header.Get("Accept"))
}

func TestLoginSendsNoBearer(t *testing.T) {
	t.Parallel()

	backend := apitest.New(t)
	client := newTestClient(backend.BaseURL(), "stale-token")

	result, err := client.Login(context.Background(), domain.LoginRequest{Phone: "0712345678", Password: "secret1", Role: "Buyer"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", result.Token)
	require.NotNil(t, result.User)
	assert.Equal(t, domain.RoleBuyer, result.User.Role)

	reqs := backend.RequestsTo(http.MethodPost, "/auth/login")
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Header.Get("Authorization"))
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))
	assert.Equal(t, map[string]any{"phone": "0712345678", "password": "secret1", "role": "Buyer"}, reqs[0].JSON())
}

func TestSearchProductsQuery(t *testing.T) {
	t.Parallel()

	backend := apitest.New(t)
	client := newTestClient(backend.BaseURL(), "tok")
	ctx := context.Background()

	products, err := client.SearchProducts(ctx, "milk", "Grocery")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Milk", products[0].Name)

	_, err = client.SearchProducts(ctx, "bread", domain.CategoryAll)
	require.NoError(t, err)

	reqs := backend.RequestsTo(http.MethodGet, "/products/search")
	require.Len(t, reqs, 2)
	assert.Equal(t, "milk", reqs[0].Query.Get("q"))
	assert.Equal(t, "Grocery", reqs[0].Query.Get("category"))
	assert.Equal(t, "bread", reqs[1].Query.Get("q"))
	assert.False(t, reqs[1].Query.Has("category"))
}

func TestMultipartProductCalls(t *testing.T) {
	t.Parallel()

	backend := apitest.New(t)
	client := newTestClient(backend.BaseURL(), "tok")
	ctx := context.Background()

	require.NoError(t, client.AddProduct(ctx, domain.ProductForm{
		Name: "Tea", Category: "General", Price: "120", StockQuantity: "9", Description: "Kericho", SellerID: "5",
	}))
	require.NoError(t, client.UpdateProduct(ctx, "21", domain.ProductForm{
		Name: "Sugar 1kg", Description: "Mumias", Price: "180", StockQuantity: "55", Category: "Grocery",
	}))

	add := backend.RequestsTo(http.MethodPost, "/products/add")
	require.Len(t, add, 1)
	assert.Equal(t, "5", add[0].Form["sellerId"])
	assert.Equal(t, "Tea", add[0].Form["name"])
	assert.Equal(t, "Bearer tok", add[0].Header.Get("Authorization"))

	update := backend.RequestsTo(http.MethodPatch, "/products/update/{id}")
	require.Len(t, update, 1)
	assert.Equal(t, "21", update[0].Vars["id"])
	assert.Equal(t, map[string]string{
		"name": "Sugar 1kg", "description": "Mumias", "price": "180", "stockQuantity": "55", "category": "Grocery",
	}, update[0].Form)
}

func TestMultipartFailureMessages(t *testing.T) {
	t.Parallel()

	backend := apitest.New(t)
	backend.Respond(http.MethodPost, "/products/add", http.StatusBadRequest, `{"error":"ignored for uploads"}`)
	backend.Respond(http.MethodPatch, "/products/update/{id}", http.StatusInternalServerError, ``)
	client := newTestClient(backend.BaseURL(), "tok")
	ctx := context.Background()

	err := client.AddProduct(ctx, domain.ProductForm{Name: "x"})
	require.EqualError(t, err, "Failed")

	err = client.UpdateProduct(ctx, "1", domain.ProductForm{Name: "x"})
	require.EqualError(t, err, "Update failed")
}

func TestCompleteOrderPayload(t *testing.T) {
	t.Parallel()

	backend := apitest.New(t)
	client := newTestClient(backend.BaseURL(), "tok")

	require.NoError(t, client.CompleteOrder(context.Background(), "701", domain.DefaultCoordinate))

	reqs := backend.RequestsTo(http.MethodPost, "/orders/complete")
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"orderId":"701","bikerLat":-1.286389,"bikerLng":36.817223}`, string(reqs[0].Body))
}

func TestMetricsSnapshotCountsOutcomes(t *testing.T) {
	t.Parallel()

	backend := apitest.New(t)
	backend.Respond(http.MethodGet, "/agent/sellers", http.StatusForbidden, `{"message":"Agents only"}`)
	client := newTestClient(backend.BaseURL(), "tok")
	ctx := context.Background()

	_, err := client.Health(ctx)
	require.NoError(t, err)
	_, err = client.AgentSellers(ctx)
	require.EqualError(t, err, "Agents only")

	samples, err := client.Metrics().Snapshot()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, s := range samples {
		if s.Name == "jirani_api_requests_total" {
			counts[s.Labels["route"]+" "+s.Labels["outcome"]] = s.Value
		}
	}
	assert.Equal(t, float64(1), counts["/health/db ok"])
	assert.Equal(t, float64(1), counts["/agent/sellers http_error"])
}
