// Package apitest runs an in-process marketplace backend for tests. Every
// endpoint answers with a canned payload that tests can override per route,
// and every request is recorded for assertions.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

type Recorded struct {
	Method string
	Route  string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
	Form   map[string]string
	Vars   map[string]string
}

// JSON decodes the recorded body into a generic map.
func (r Recorded) JSON() map[string]any {
	out := map[string]any{}
	_ = json.Unmarshal(r.Body, &out)
	return out
}

type response struct {
	status int
	body   string
}

type Backend struct {
	server *httptest.Server

	mu        sync.Mutex
	requests  []Recorded
	overrides map[string]response
}

type route struct {
	method string
	path   string
	body   string
}

var defaultRoutes = []route{
	{http.MethodPost, "/auth/login", `{"token":"tok-1","user":{"id":1,"role":"Buyer","name":"Achieng","phone":"0712345678"},"stats":{"orders":0}}`},
	{http.MethodPost, "/auth/register", `{"message":"Registered"}`},
	{http.MethodPost, "/auth/forgot-password", `{"message":"Code sent"}`},
	{http.MethodPost, "/auth/reset-password", `{"message":"Password reset"}`},
	{http.MethodGet, "/health/db", `{"message":"Backend online","database":"jirani_db"}`},
	{http.MethodGet, "/auth/nearby", `{"sellers":[{"id":11,"shop_name":"Mama Mboga","category":"Grocery","distance":1.24,"lat":-1.2841,"lng":36.8155},{"id":12,"shop_name":"Duka la Dawa","category":"pharmacy","distance":"3.5","lat":-1.29,"lng":36.82},{"id":13,"shop_name":"Fundi Hub","category":"Tailoring","distance":4}]}`},
	{http.MethodGet, "/auth/nearest-biker", `{"id":9,"name":"Otieno","phone":"0722000111","distance":1.25}`},
	{http.MethodGet, "/products/search", `{"products":[{"id":1,"name":"Milk","category":"Grocery","shop_name":"Mama Mboga","stock_quantity":12,"price":65}]}`},
	{http.MethodGet, "/products/seller/{id}", `{"products":[{"id":21,"name":"Sugar 1kg","description":"Mumias","price":180,"stock_quantity":40,"category":"Grocery"},{"id":22,"name":"Bread","price":"65","stock_quantity":3}]}`},
	{http.MethodPost, "/products/add", `{"message":"Product added"}`},
	{http.MethodPatch, "/products/update/{id}", `{"message":"Product updated"}`},
	{http.MethodDelete, "/products/delete/{id}", `{"message":"Product deleted"}`},
	{http.MethodGet, "/sellers/analytics/{id}", `{"data":{"total_orders":12,"total_revenue":4500,"low_stock_count":2}}`},
	{http.MethodGet, "/sellers/pending-orders/{id}", `{"orders":[{"id":501,"amount":1200,"buyer_id":3,"status":"pending"}]}`},
	{http.MethodPost, "/sellers/link-order/{id}", `{"message":"Linked"}`},
	{http.MethodGet, "/sellers/payment-history/{id}", `{"history":[{"amount":800,"receipt":"QX12AB","status":"completed"},{"amount":300}]}`},
	{http.MethodGet, "/orders/stats", `{"stats":{"activeJobs":2,"completedJobs":5,"earnings":1234.6}}`},
	{http.MethodGet, "/orders/available", `{"orders":[{"id":701,"amount":350,"business_name":"Mama Mboga","status":"ready"}]}`},
	{http.MethodPost, "/orders/accept", `{"message":"Accepted"}`},
	{http.MethodPost, "/orders/pickup", `{"message":"On the way"}`},
	{http.MethodPost, "/orders/complete", `{"message":"Completed"}`},
	{http.MethodPost, "/payments/stkpush", `{"checkoutID":"ws_CO_123"}`},
	{http.MethodPost, "/assistant/sos/request", `{"message":"SOS broadcast to 3 assistants"}`},
	{http.MethodGet, "/assistant/nearby-sos", `{"requests":[{"id":31,"issue_description":"Flat tire","distance_km":2.345,"client_phone":"0700111222"}]}`},
	{http.MethodPost, "/assistant/accept", `{"message":"Accepted"}`},
	{http.MethodPost, "/assistant/complete", `{"message":"Completed"}`},
	{http.MethodGet, "/agent/dashboard-stats/{id}", `{"stats":{"totalSellers":14,"activeRiders":6,"activeSOS":1,"criticalStockCount":3,"systemVolume":98000,"commissionBalance":2450}}`},
	{http.MethodGet, "/agent/sellers", `{"sellers":[{"id":41,"shop_name":"Kibanda","phone":"0733000444","product_count":8,"low_stock_alerts":1}]}`},
	{http.MethodPatch, "/agent/deactivate-user/{id}", `{"message":"Deactivated"}`},
}

// New starts a backend serving under /api and closes it with the test.
func New(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{overrides: map[string]response{}}

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	for _, rt := range defaultRoutes {
		api.HandleFunc(rt.path, b.handler(rt)).Methods(rt.method)
	}

	b.server = httptest.NewServer(router)
	t.Cleanup(b.server.Close)

	return b
}

// BaseURL is the server root without the /api suffix, the way users type it.
func (b *Backend) BaseURL() string {
	return b.server.URL
}

func (b *Backend) APIURL() string {
	return b.server.URL + "/api"
}

// Respond overrides the answer for a route template such as
// "/products/seller/{id}".
func (b *Backend) Respond(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.overrides[key(method, path)] = response{status: status, body: body}
}

func (b *Backend) Requests() []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Recorded, len(b.requests))
	copy(out, b.requests)
	return out
}

// RequestsTo filters recorded requests by method and route template.
func (b *Backend) RequestsTo(method, path string) []Recorded {
	var out []Recorded
	for _, r := range b.Requests() {
		if r.Method == method && r.Route == path {
			out = append(out, r)
		}
	}

	return out
}

func (b *Backend) handler(rt route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recorded := Recorded{
			Method: r.Method,
			Route:  rt.path,
			Path:   strings.TrimPrefix(r.URL.Path, "/api"),
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Vars:   mux.Vars(r),
		}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				recorded.Form = map[string]string{}
				for name, values := range r.MultipartForm.Value {
					if len(values) > 0 {
						recorded.Form[name] = values[0]
					}
				}
			}
		} else {
			recorded.Body, _ = io.ReadAll(r.Body)
		}

		b.mu.Lock()
		b.requests = append(b.requests, recorded)
		resp, ok := b.overrides[key(rt.method, rt.path)]
		b.mu.Unlock()

		if !ok {
			resp = response{status: http.StatusOK, body: rt.body}
		}

		if resp.body != "" && json.Valid([]byte(resp.body)) {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(resp.status)
		_, _ = fmt.Fprint(w, resp.body)
	}
}

func key(method, path string) string {
	return method + " " + path
}
