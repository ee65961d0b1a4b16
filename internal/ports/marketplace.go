package ports

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

type AuthAPI interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error)
	Register(ctx context.Context, req domain.RegisterRequest) error
	ForgotPassword(ctx context.Context, phone string) error
	ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
}

type BuyerAPI interface {
	NearbySellers(ctx context.Context, at domain.Coordinate, radiusKm float64) ([]domain.NearbySeller, error)
	NearestBiker(ctx context.Context, at domain.Coordinate) (domain.NearestBiker, error)
	SearchProducts(ctx context.Context, query, category string) ([]domain.Product, error)
	SendSOS(ctx context.Context, req domain.SOSRequest) (string, error)
}

type SellerAPI interface {
	SellerAnalytics(ctx context.Context, sellerID string) (domain.SellerAnalytics, error)
	SellerProducts(ctx context.Context, sellerID string) ([]domain.Product, error)
	AddProduct(ctx context.Context, form domain.ProductForm) error
	UpdateProduct(ctx context.Context, productID string, form domain.ProductForm) error
	DeleteProduct(ctx context.Context, productID string) error
	PendingOrders(ctx context.Context, sellerID string) ([]domain.Order, error)
	LinkOrder(ctx context.Context, sellerID string, orderID, bikerID domain.FlexString) error
	PaymentHistory(ctx context.Context, sellerID string) ([]domain.PaymentRecord, error)
}

type BikerAPI interface {
	BikerStats(ctx context.Context) (domain.BikerStats, error)
	AvailableOrders(ctx context.Context) ([]domain.Order, error)
	AcceptOrder(ctx context.Context, orderID string) error
	PickupOrder(ctx context.Context, orderID string) error
	CompleteOrder(ctx context.Context, orderID string, at domain.Coordinate) error
	STKPush(ctx context.Context, req domain.STKPushRequest) (string, error)
}

type AssistantAPI interface {
	NearbySOS(ctx context.Context, at domain.Coordinate, radiusKm float64) ([]domain.SosRequest, error)
	AcceptSOS(ctx context.Context, requestID string) error
	CompleteSOS(ctx context.Context, requestID string, totalFee float64, notes string) error
}

type AgentAPI interface {
	AgentStats(ctx context.Context, agentID string) (domain.AgentStats, error)
	AgentSellers(ctx context.Context) ([]domain.SellerSummary, error)
	DeactivateUser(ctx context.Context, userID string) error
}

// MarketplaceAPI is the full remote surface the dashboards consume.
type MarketplaceAPI interface {
	AuthAPI
	BuyerAPI
	SellerAPI
	BikerAPI
	AssistantAPI
	AgentAPI

	Health(ctx context.Context) (domain.HealthStatus, error)
	BaseURL(ctx context.Context) string
}
