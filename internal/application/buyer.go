package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

const (
	keyBuyerSellers = "buyer.sellers"
	keyBuyerSearch  = "buyer.search"

	defaultSOSRegion = "nairobi"
	yourLocation     = "Your Location"
)

func (a *App) loadBuyer(ctx context.Context, view domain.ViewID) error {
	switch view {
	case domain.ViewSOS:
		return nil
	default:
		return a.LoadMarketplace(ctx)
	}
}

// LoadMarketplace refreshes the location, fetches sellers within 10 km and
// resets the category, search and map state.
func (a *App) LoadMarketplace(ctx context.Context) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	at := a.EnsureLocation(ctx)

	tok := a.begin(keyBuyerSellers)
	sellers, err := a.api.NearbySellers(ctx, at, nearbySellersRadiusKm)
	if err != nil {
		a.logger.Debug().Err(err).Msg("fetch nearby sellers")
		sellers = nil
	}

	a.commit(tok, func(s *State) {
		a.generations[keyBuyerSearch]++
		s.Buyer = BuyerState{
			Sellers:        sellers,
			Categories:     domain.MergeCategories(sellers),
			ActiveCategory: domain.CategoryAll,
			Map:            MapFocus{Title: yourLocation, Location: s.Geo.Location, Valid: s.Geo.Location.Finite()},
		}
	})

	return nil
}

// SearchProducts searches by name within the active category. A blank query
// clears the results without a request. The failure message replaces the
// results and is also returned.
func (a *App) SearchProducts(ctx context.Context, query string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	q := strings.TrimSpace(query)
	if q == "" {
		a.mu.Lock()
		a.generations[keyBuyerSearch]++
		a.state.Buyer.Query = ""
		a.state.Buyer.Searched = false
		a.state.Buyer.Results = nil
		a.state.Buyer.SearchError = ""
		a.mu.Unlock()
		return nil
	}

	var category string
	a.update(func(s *State) {
		s.Buyer.Query = q
		category = s.Buyer.ActiveCategory
	})

	tok := a.begin(keyBuyerSearch)
	products, err := a.api.SearchProducts(ctx, q, category)

	a.commit(tok, func(s *State) {
		s.Buyer.Searched = true
		if err != nil {
			s.Buyer.Results = nil
			s.Buyer.SearchError = err.Error()
			return
		}
		s.Buyer.Results = products
		s.Buyer.SearchError = ""
	})

	return err
}

// SelectCategory filters sellers by category, matching the label
// case-insensitively, and re-runs a pending search.
func (a *App) SelectCategory(ctx context.Context, category string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}

	var (
		found bool
		query string
	)
	a.update(func(s *State) {
		for _, candidate := range s.Buyer.Categories {
			if strings.EqualFold(candidate, strings.TrimSpace(category)) {
				s.Buyer.ActiveCategory = candidate
				found = true
				break
			}
		}
		query = s.Buyer.Query
	})
	if !found {
		return domain.NewValidationError(msgUnknownCategory)
	}

	if query != "" {
		return a.SearchProducts(ctx, query)
	}

	return nil
}

// ShowMap focuses the map panel on a seller, or on the current location when
// sellerID is empty.
func (a *App) ShowMap(sellerID string) error {
	var err error
	a.update(func(s *State) {
		if sellerID == "" {
			s.Buyer.Map = MapFocus{Title: yourLocation, Location: s.Geo.Location, Valid: s.Geo.Location.Finite()}
			return
		}

		seller, ok := s.Buyer.SellerByID(sellerID)
		if !ok {
			err = sellerNotFound(sellerID)
			return
		}

		title := seller.ShopName
		if title == "" {
			title = "Shop"
		}
		location, valid := seller.Location()
		s.Buyer.Map = MapFocus{Title: title, Location: location, Valid: valid}
	})

	return err
}

// NearestBikerFor looks up the closest biker to a seller's pin.
func (a *App) NearestBikerFor(ctx context.Context, sellerID string) (string, error) {
	seller, ok := a.Snapshot().Buyer.SellerByID(sellerID)
	if !ok {
		return "", sellerNotFound(sellerID)
	}

	location, valid := seller.Location()
	if !valid {
		return "", domain.NewValidationError(msgNoSellerLocation)
	}

	biker, err := a.api.NearestBiker(ctx, location)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Nearest biker: %s (%s)", orDefault(biker.Name, "Biker"), orDefault(biker.Phone, "N/A")), nil
}

// SendSOS broadcasts an emergency request from the current location.
func (a *App) SendSOS(ctx context.Context, form SOSForm) (string, error) {
	if _, err := a.currentUser(); err != nil {
		return "", err
	}

	at := a.EnsureLocation(ctx)

	region := form.Region
	if region == "" {
		region = defaultSOSRegion
	}
	form = SOSForm{
		Issue:          strings.TrimSpace(form.Issue),
		Region:         strings.TrimSpace(region),
		Phone:          strings.TrimSpace(form.Phone),
		VehicleDetails: strings.TrimSpace(form.VehicleDetails),
	}
	if err := forms.validate(form); err != nil {
		return "", err
	}

	message, err := a.api.SendSOS(ctx, domain.SOSRequest{
		Issue:          form.Issue,
		Region:         form.Region,
		Phone:          form.Phone,
		VehicleDetails: form.VehicleDetails,
		Lat:            at.Lat,
		Lng:            at.Lng,
	})
	if err != nil {
		return "", err
	}

	return orDefault(message, "SOS sent"), nil
}

func sellerNotFound(id string) error {
	return &domain.ValidationError{Message: fmt.Sprintf("Seller %s is not in the current list.", id)}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
