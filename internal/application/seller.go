package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

const (
	keySellerAnalytics = "seller.analytics"
	keySellerProducts  = "seller.products"
	keySellerBiker     = "seller.biker"
	keySellerOrders    = "seller.orders"
	keySellerPayments  = "seller.payments"
)

func (a *App) loadSeller(ctx context.Context, user domain.User, view domain.ViewID) error {
	switch view {
	case domain.ViewProducts:
		return a.loadSellerProducts(ctx, user)
	case domain.ViewLinking:
		return a.loadSellerLinking(ctx, user)
	case domain.ViewPayments:
		return a.loadSellerPayments(ctx, user)
	default:
		return a.loadSellerAnalytics(ctx, user)
	}
}

func (a *App) loadSellerAnalytics(ctx context.Context, user domain.User) error {
	tok := a.begin(keySellerAnalytics)
	analytics, err := a.api.SellerAnalytics(ctx, user.ID.Value)
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch seller analytics")
		analytics = domain.SellerAnalytics{}
	}

	a.commit(tok, func(s *State) { s.Seller.Analytics = analytics })
	return nil
}

func (a *App) loadSellerProducts(ctx context.Context, user domain.User) error {
	tok := a.begin(keySellerProducts)
	products, err := a.api.SellerProducts(ctx, user.ID.Value)
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch seller products")
		products = nil
	}

	a.commit(tok, func(s *State) { s.Seller.Products = products })
	return nil
}

func (a *App) loadSellerLinking(ctx context.Context, user domain.User) error {
	at := a.EnsureLocation(ctx)

	bikerTok := a.begin(keySellerBiker)
	biker, err := a.api.NearestBiker(ctx, at)
	var linked *domain.NearestBiker
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch nearest biker")
	} else {
		linked = &biker
	}
	a.commit(bikerTok, func(s *State) { s.Seller.Biker = linked })

	ordersTok := a.begin(keySellerOrders)
	orders, err := a.api.PendingOrders(ctx, user.ID.Value)
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch pending orders")
		orders = nil
	}
	a.commit(ordersTok, func(s *State) { s.Seller.Orders = orders })

	return nil
}

func (a *App) loadSellerPayments(ctx context.Context, user domain.User) error {
	tok := a.begin(keySellerPayments)
	history, err := a.api.PaymentHistory(ctx, user.ID.Value)
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch payment history")
		history = nil
	}

	a.commit(tok, func(s *State) { s.Seller.Payments = history })
	return nil
}

// LoadProducts refreshes the seller's product list.
func (a *App) LoadProducts(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	return a.loadSellerProducts(ctx, user)
}

func (a *App) AddProduct(ctx context.Context, input ProductInput) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	input.Price = strings.TrimSpace(input.Price)
	input.StockQuantity = strings.TrimSpace(input.StockQuantity)
	if input.Category == "" {
		input.Category = domain.CategoryGeneral
	}

	if err := forms.validate(input); err != nil {
		return err
	}

	err = a.api.AddProduct(ctx, domain.ProductForm{
		Name:          input.Name,
		Category:      input.Category,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		Description:   input.Description,
		SellerID:      user.ID.Value,
	})
	if err != nil {
		return err
	}

	return a.loadSellerProducts(ctx, user)
}

// UpdateStock asks for the new quantity and resends the product. Backing out
// of the prompt returns ErrCancelled without a request.
func (a *App) UpdateStock(ctx context.Context, productID string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	prompter := a.currentPrompter()
	if prompter == nil {
		return domain.ErrCancelled
	}

	quantity, err := prompter.Prompt(ctx, LabelNewStock)
	if err != nil {
		return err
	}

	return a.SetStock(ctx, productID, quantity)
}

// SetStock resends the whole product record with a new stock quantity; the
// update endpoint has no partial patch. Products not in the loaded list fail
// with ErrProductNotFound before any request.
func (a *App) SetStock(ctx context.Context, productID, quantity string) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	product, ok := a.Snapshot().Seller.ProductByID(productID)
	if !ok {
		return fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
	}

	price := ""
	if product.Price.Valid {
		price = domain.FormatNumber(product.Price.Value)
	}

	err = a.api.UpdateProduct(ctx, productID, domain.ProductForm{
		Name:          product.Name,
		Description:   product.Description,
		Price:         price,
		StockQuantity: quantity,
		Category:      orDefault(product.Category, domain.CategoryGeneral),
	})
	if err != nil {
		return err
	}

	return a.loadSellerProducts(ctx, user)
}

func (a *App) DeleteProduct(ctx context.Context, productID string) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	if err := a.api.DeleteProduct(ctx, productID); err != nil {
		return err
	}

	return a.loadSellerProducts(ctx, user)
}

// LoadLinking refreshes the nearest biker and the pending orders.
func (a *App) LoadLinking(ctx context.Context) error {
	user, err := a.currentUser()
	if err != nil {
		return err
	}

	return a.loadSellerLinking(ctx, user)
}

// LinkOrder hands a pending order to the nearest biker found by the last
// linking load.
func (a *App) LinkOrder(ctx context.Context, orderID string) (string, error) {
	user, err := a.currentUser()
	if err != nil {
		return "", err
	}

	biker := a.Snapshot().Seller.Biker
	if biker == nil {
		return "", errNoBiker()
	}

	if err := a.api.LinkOrder(ctx, user.ID.Value, domain.NewFlexString(orderID), biker.ID); err != nil {
		return "", err
	}

	alert := fmt.Sprintf("Order #%s linked successfully.", orderID)
	if err := a.loadSellerLinking(ctx, user); err != nil {
		return alert, err
	}

	return alert, nil
}

func errNoBiker() error {
	return &domain.ValidationError{Message: msgNoBiker, Err: domain.ErrNoNearestBiker}
}
