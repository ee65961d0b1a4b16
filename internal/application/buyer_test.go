package application

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketplaceLoadsSellersAroundCurrentFix(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)

	h.signIn(t, "")

	state := h.app.Snapshot()
	assert.Equal(t, domain.ViewMarketplace, state.View)
	assert.Equal(t, domain.GeoEnabled, state.Geo.Status)
	require.Len(t, state.Buyer.Sellers, 3)
	assert.Equal(t, domain.CategoryAll, state.Buyer.ActiveCategory)
	assert.Equal(t, MapFocus{Title: "Your Location", Location: domain.Coordinate{Lat: -1.3, Lng: 36.8}, Valid: true}, state.Buyer.Map)

	categories := state.Buyer.Categories
	assert.Equal(t, domain.BaseCategories(), categories[:len(categories)-1])
	assert.Equal(t, "Tailoring", categories[len(categories)-1])

	reqs := h.backend.RequestsTo(http.MethodGet, "/auth/nearby")
	require.Len(t, reqs, 1)
	assert.Equal(t, "-1.3", reqs[0].Query.Get("lat"))
	assert.Equal(t, "36.8", reqs[0].Query.Get("lng"))
	assert.Equal(t, "10", reqs[0].Query.Get("radius"))
}

func TestMarketplaceFetchFailureDegradesToEmpty(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	h.backend.Respond(http.MethodGet, "/auth/nearby", http.StatusInternalServerError, `{"message":"boom"}`)

	h.signIn(t, "")

	state := h.app.Snapshot()
	assert.Empty(t, state.Buyer.Sellers)
	assert.Equal(t, domain.BaseCategories(), state.Buyer.Categories)
	assert.Empty(t, state.Alert)
}

func TestSearchSendsQueryAndActiveCategory(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	ctx := context.Background()
	h.signIn(t, "")

	require.NoError(t, h.app.SelectCategory(ctx, "grocery"))
	assert.Empty(t, h.backend.RequestsTo(http.MethodGet, "/products/search"))

	require.NoError(t, h.app.SearchProducts(ctx, "  milk "))

	reqs := h.backend.RequestsTo(http.MethodGet, "/products/search")
	require.Len(t, reqs, 1)
	assert.Equal(t, "milk", reqs[0].Query.Get("q"))
	assert.Equal(t, "Grocery", reqs[0].Query.Get("category"))

	buyer := h.app.Snapshot().Buyer
	assert.True(t, buyer.Searched)
	require.Len(t, buyer.Results, 1)
	assert.Equal(t, "Milk", buyer.Results[0].Name)
}

func TestBlankSearchClearsResultsWithoutRequest(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	ctx := context.Background()
	h.signIn(t, "")

	require.NoError(t, h.app.SearchProducts(ctx, "milk"))
	require.NoError(t, h.app.SearchProducts(ctx, "   "))

	assert.Len(t, h.backend.RequestsTo(http.MethodGet, "/products/search"), 1)
	buyer := h.app.Snapshot().Buyer
	assert.False(t, buyer.Searched)
	assert.Empty(t, buyer.Results)
	assert.Empty(t, buyer.Query)
}

func TestCategoryChangeReissuesPendingSearch(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	ctx := context.Background()
	h.signIn(t, "")

	require.NoError(t, h.app.SearchProducts(ctx, "panadol"))
	require.NoError(t, h.app.SelectCategory(ctx, "Pharmacy"))

	reqs := h.backend.RequestsTo(http.MethodGet, "/products/search")
	require.Len(t, reqs, 2)
	assert.False(t, reqs[0].Query.Has("category"))
	assert.Equal(t, "panadol", reqs[1].Query.Get("q"))
	assert.Equal(t, "Pharmacy", reqs[1].Query.Get("category"))

	assert.Len(t, h.app.Snapshot().Buyer.VisibleSellers(), 0)
}

func TestUnknownCategoryIsRejected(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	h.signIn(t, "")

	err := h.app.SelectCategory(context.Background(), "Spaceships")

	require.EqualError(t, err, "Unknown category.")
	assert.Equal(t, domain.CategoryAll, h.app.Snapshot().Buyer.ActiveCategory)
}

func TestSearchFailureReplacesResults(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	h.backend.Respond(http.MethodGet, "/products/search", http.StatusBadGateway, `{"message":"Search offline"}`)
	h.signIn(t, "")

	err := h.app.SearchProducts(context.Background(), "bread")

	require.EqualError(t, err, "Search offline")
	buyer := h.app.Snapshot().Buyer
	assert.Equal(t, "Search offline", buyer.SearchError)
	assert.Empty(t, buyer.Results)
}

func TestShowMapFocusesSeller(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	h.signIn(t, "")

	require.NoError(t, h.app.ShowMap("11"))
	assert.Equal(t, MapFocus{Title: "Mama Mboga", Location: domain.Coordinate{Lat: -1.2841, Lng: 36.8155}, Valid: true}, h.app.Snapshot().Buyer.Map)

	require.NoError(t, h.app.ShowMap("13"))
	assert.False(t, h.app.Snapshot().Buyer.Map.Valid)

	require.Error(t, h.app.ShowMap("404"))
}

func TestNearestBikerForSeller(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	ctx := context.Background()
	h.signIn(t, "")

	alert, err := h.app.NearestBikerFor(ctx, "11")
	require.NoError(t, err)
	assert.Equal(t, "Nearest biker: Otieno (0722000111)", alert)

	reqs := h.backend.RequestsTo(http.MethodGet, "/auth/nearest-biker")
	require.Len(t, reqs, 1)
	assert.Equal(t, "-1.2841", reqs[0].Query.Get("lat"))
	assert.Equal(t, "36.8155", reqs[0].Query.Get("lng"))

	h.backend.Respond(http.MethodGet, "/auth/nearest-biker", http.StatusOK, `{}`)
	alert, err = h.app.NearestBikerFor(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "Nearest biker: Biker (N/A)", alert)

	_, err = h.app.NearestBikerFor(ctx, "13")
	require.EqualError(t, err, "Seller location not available.")
}

func TestSendSOSUsesFreshFixAndDefaultRegion(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	ctx := context.Background()
	h.signIn(t, domain.ViewSOS)
	assert.Zero(t, h.locator.Calls())

	alert, err := h.app.SendSOS(ctx, SOSForm{Issue: " Flat tire ", Phone: "0700111222", VehicleDetails: "Probox"})
	require.NoError(t, err)
	assert.Equal(t, "SOS broadcast to 3 assistants", alert)
	assert.Equal(t, 1, h.locator.Calls())

	reqs := h.backend.RequestsTo(http.MethodPost, "/assistant/sos/request")
	require.Len(t, reqs, 1)
	assert.Equal(t, map[string]any{
		"issue":          "Flat tire",
		"region":         "nairobi",
		"phone":          "0700111222",
		"vehicleDetails": "Probox",
		"lat":            -1.3,
		"lng":            36.8,
	}, reqs[0].JSON())

	h.backend.Respond(http.MethodPost, "/assistant/sos/request", http.StatusOK, `{}`)
	alert, err = h.app.SendSOS(ctx, SOSForm{Issue: "Battery", Region: "mombasa"})
	require.NoError(t, err)
	assert.Equal(t, "SOS sent", alert)

	_, err = h.app.SendSOS(ctx, SOSForm{Issue: "  "})
	require.EqualError(t, err, "Describe the emergency first.")
}

func TestLocationFailureKeepsLastCoordinate(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus domain.GeoStatus
		wantError  string
	}{
		{name: "denied", err: &domain.PositionError{Code: domain.PositionPermissionDenied}, wantStatus: domain.GeoPermissionDenied, wantError: domain.GeoDefaultHint},
		{name: "unavailable with message", err: &domain.PositionError{Code: domain.PositionUnavailable, Message: "lookup failed"}, wantStatus: domain.GeoPositionUnavailable, wantError: "lookup failed"},
		{name: "timeout", err: &domain.PositionError{Code: domain.PositionTimeout}, wantStatus: domain.GeoTimeout, wantError: domain.GeoDefaultHint},
		{name: "other code", err: &domain.PositionError{Code: 9, Message: "odd"}, wantStatus: domain.GeoUnavailable, wantError: "odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, domain.RoleBuyer)
			h.locator.err = tt.err

			got := h.app.EnsureLocation(context.Background())

			assert.Equal(t, domain.DefaultCoordinate, got)
			geo := h.app.Snapshot().Geo
			assert.Equal(t, tt.wantStatus, geo.Status)
			assert.Equal(t, tt.wantError, geo.Error)
		})
	}
}

func TestLocationTimeoutUsesDeadline(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	h.locator.block = true
	h.app.geoTimeout = 20 * time.Millisecond

	got := h.app.EnsureLocation(context.Background())

	assert.Equal(t, domain.DefaultCoordinate, got)
	assert.Equal(t, domain.GeoTimeout, h.app.Snapshot().Geo.Status)
}

func TestLocationWithoutProviderIsUnsupported(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	h.app.locator = nil

	got := h.app.EnsureLocation(context.Background())

	assert.Equal(t, domain.DefaultCoordinate, got)
	geo := h.app.Snapshot().Geo
	assert.Equal(t, domain.GeoUnsupported, geo.Status)
	assert.Equal(t, "Geolocation API is not available.", geo.Error)
}

func TestSuccessfulFixClearsPreviousError(t *testing.T) {
	h := newHarness(t, domain.RoleBuyer)
	ctx := context.Background()
	h.locator.err = &domain.PositionError{Code: domain.PositionUnavailable}
	h.app.EnsureLocation(ctx)

	h.locator.err = nil
	got := h.app.EnsureLocation(ctx)

	assert.Equal(t, domain.Coordinate{Lat: -1.3, Lng: 36.8}, got)
	geo := h.app.Snapshot().Geo
	assert.Equal(t, domain.GeoEnabled, geo.Status)
	assert.Empty(t, geo.Error)
}
