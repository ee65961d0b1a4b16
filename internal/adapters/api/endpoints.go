package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	var out domain.LoginResult
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/login", JSON: req}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/register", JSON: req}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, phone string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/auth/forgot-password",
		JSON:   map[string]string{"phone": phone},
	}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/reset-password", JSON: req}, nil)
}

func (c *Client) Health(ctx context.Context) (domain.HealthStatus, error) {
	var out domain.HealthStatus
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/health/db"}, &out)
	return out, err
}

func (c *Client) NearbySellers(ctx context.Context, at domain.Coordinate, radiusKm float64) ([]domain.NearbySeller, error) {
	var out struct {
		Sellers []domain.NearbySeller `json:"sellers"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/auth/nearby",
		Path:   "/auth/nearby?" + coordinateQuery(at, radiusKm),
		Auth:   true,
	}, &out)
	return out.Sellers, err
}

func (c *Client) NearestBiker(ctx context.Context, at domain.Coordinate) (domain.NearestBiker, error) {
	var out domain.NearestBiker
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/auth/nearest-biker",
		Path:   "/auth/nearest-biker?" + coordinateQuery(at, 0),
		Auth:   true,
	}, &out)
	return out, err
}

// SearchProducts omits the category for "All".
func (c *Client) SearchProducts(ctx context.Context, query, category string) ([]domain.Product, error) {
	params := url.Values{}
	params.Set("q", query)
	if category != "" && category != domain.CategoryAll {
		params.Set("category", category)
	}

	var out struct {
		Products []domain.Product `json:"products"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/products/search",
		Path:   "/products/search?" + params.Encode(),
		Auth:   true,
	}, &out)
	return out.Products, err
}

func (c *Client) SendSOS(ctx context.Context, req domain.SOSRequest) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/assistant/sos/request", Auth: true, JSON: req}, &out)
	return out.Message, err
}

func (c *Client) SellerAnalytics(ctx context.Context, sellerID string) (domain.SellerAnalytics, error) {
	var out struct {
		Data domain.SellerAnalytics `json:"data"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/sellers/analytics/:id",
		Path:   "/sellers/analytics/" + url.PathEscape(sellerID),
		Auth:   true,
	}, &out)
	return out.Data, err
}

func (c *Client) SellerProducts(ctx context.Context, sellerID string) ([]domain.Product, error) {
	var out struct {
		Products []domain.Product `json:"products"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/products/seller/:id",
		Path:   "/products/seller/" + url.PathEscape(sellerID),
		Auth:   true,
	}, &out)
	return out.Products, err
}

func (c *Client) AddProduct(ctx context.Context, form domain.ProductForm) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/products/add",
		Auth:   true,
		Form: []FormField{
			{Name: "name", Value: form.Name},
			{Name: "category", Value: form.Category},
			{Name: "price", Value: form.Price},
			{Name: "stockQuantity", Value: form.StockQuantity},
			{Name: "description", Value: form.Description},
			{Name: "sellerId", Value: form.SellerID},
		},
		FailureMessage: "Failed",
	}, nil)
}

// UpdateProduct resends the whole record; the endpoint has no partial patch.
func (c *Client) UpdateProduct(ctx context.Context, productID string, form domain.ProductForm) error {
	return c.Do(ctx, Request{
		Method: http.MethodPatch,
		Route:  "/products/update/:id",
		Path:   "/products/update/" + url.PathEscape(productID),
		Auth:   true,
		Form: []FormField{
			{Name: "name", Value: form.Name},
			{Name: "description", Value: form.Description},
			{Name: "price", Value: form.Price},
			{Name: "stockQuantity", Value: form.StockQuantity},
			{Name: "category", Value: form.Category},
		},
		FailureMessage: "Update failed",
	}, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.Do(ctx, Request{
		Method: http.MethodDelete,
		Route:  "/products/delete/:id",
		Path:   "/products/delete/" + url.PathEscape(productID),
		Auth:   true,
	}, nil)
}

func (c *Client) PendingOrders(ctx context.Context, sellerID string) ([]domain.Order, error) {
	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/sellers/pending-orders/:id",
		Path:   "/sellers/pending-orders/" + url.PathEscape(sellerID),
		Auth:   true,
	}, &out)
	return out.Orders, err
}

func (c *Client) LinkOrder(ctx context.Context, sellerID string, orderID, bikerID domain.FlexString) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Route:  "/sellers/link-order/:id",
		Path:   "/sellers/link-order/" + url.PathEscape(sellerID),
		Auth:   true,
		JSON: struct {
			OrderID domain.FlexString `json:"orderId"`
			BikerID domain.FlexString `json:"bikerId"`
		}{OrderID: orderID, BikerID: bikerID},
	}, nil)
}

func (c *Client) PaymentHistory(ctx context.Context, sellerID string) ([]domain.PaymentRecord, error) {
	var out struct {
		History []domain.PaymentRecord `json:"history"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/sellers/payment-history/:id",
		Path:   "/sellers/payment-history/" + url.PathEscape(sellerID),
		Auth:   true,
	}, &out)
	return out.History, err
}

func (c *Client) BikerStats(ctx context.Context) (domain.BikerStats, error) {
	var out struct {
		Stats domain.BikerStats `json:"stats"`
	}
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/orders/stats", Auth: true}, &out)
	return out.Stats, err
}

func (c *Client) AvailableOrders(ctx context.Context) ([]domain.Order, error) {
	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/orders/available", Auth: true}, &out)
	return out.Orders, err
}

func (c *Client) AcceptOrder(ctx context.Context, orderID string) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/orders/accept", Auth: true, JSON: orderPayload{OrderID: orderID}}, nil)
}

func (c *Client) PickupOrder(ctx context.Context, orderID string) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/orders/pickup", Auth: true, JSON: orderPayload{OrderID: orderID}}, nil)
}

func (c *Client) CompleteOrder(ctx context.Context, orderID string, at domain.Coordinate) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/orders/complete",
		Auth:   true,
		JSON: struct {
			OrderID  string  `json:"orderId"`
			BikerLat float64 `json:"bikerLat"`
			BikerLng float64 `json:"bikerLng"`
		}{OrderID: orderID, BikerLat: at.Lat, BikerLng: at.Lng},
	}, nil)
}

func (c *Client) STKPush(ctx context.Context, req domain.STKPushRequest) (string, error) {
	var out struct {
		CheckoutID string `json:"checkoutID"`
	}
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/payments/stkpush", Auth: true, JSON: req}, &out)
	return out.CheckoutID, err
}

func (c *Client) NearbySOS(ctx context.Context, at domain.Coordinate, radiusKm float64) ([]domain.SosRequest, error) {
	var out struct {
		Requests []domain.SosRequest `json:"requests"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/assistant/nearby-sos",
		Path:   "/assistant/nearby-sos?" + coordinateQuery(at, radiusKm),
		Auth:   true,
	}, &out)
	return out.Requests, err
}

func (c *Client) AcceptSOS(ctx context.Context, requestID string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/assistant/accept",
		Auth:   true,
		JSON:   map[string]string{"requestId": requestID},
	}, nil)
}

func (c *Client) CompleteSOS(ctx context.Context, requestID string, totalFee float64, notes string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/assistant/complete",
		Auth:   true,
		JSON: struct {
			RequestID string  `json:"requestId"`
			TotalFee  float64 `json:"totalFee"`
			Notes     string  `json:"notes"`
		}{RequestID: requestID, TotalFee: totalFee, Notes: notes},
	}, nil)
}

func (c *Client) AgentStats(ctx context.Context, agentID string) (domain.AgentStats, error) {
	var out struct {
		Stats domain.AgentStats `json:"stats"`
	}
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/agent/dashboard-stats/:id",
		Path:   "/agent/dashboard-stats/" + url.PathEscape(agentID),
		Auth:   true,
	}, &out)
	return out.Stats, err
}

func (c *Client) AgentSellers(ctx context.Context) ([]domain.SellerSummary, error) {
	var out struct {
		Sellers []domain.SellerSummary `json:"sellers"`
	}
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/agent/sellers", Auth: true}, &out)
	return out.Sellers, err
}

func (c *Client) DeactivateUser(ctx context.Context, userID string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPatch,
		Route:  "/agent/deactivate-user/:id",
		Path:   "/agent/deactivate-user/" + url.PathEscape(userID),
		Auth:   true,
	}, nil)
}

type orderPayload struct {
	OrderID string `json:"orderId"`
}

func coordinateQuery(at domain.Coordinate, radiusKm float64) string {
	params := url.Values{}
	params.Set("lat", domain.FormatNumber(at.Lat))
	params.Set("lng", domain.FormatNumber(at.Lng))
	if radiusKm > 0 {
		params.Set("radius", domain.FormatNumber(radiusKm))
	}

	return params.Encode()
}
