package application

import "github.com/jiranismart/jirani-cli/internal/domain"

type PingStatus int

const (
	PingUnknown PingStatus = iota
	PingOK
	PingFailed
)

func (p PingStatus) String() string {
	switch p {
	case PingOK:
		return "Reachable"
	case PingFailed:
		return "Offline"
	default:
		return "Not checked"
	}
}

type GeoState struct {
	Location domain.Coordinate
	Status   domain.GeoStatus
	Error    string
}

// MapFocus is the pin shown in the buyer map panel.
type MapFocus struct {
	Title    string
	Location domain.Coordinate
	Valid    bool
}

type BuyerState struct {
	Sellers        []domain.NearbySeller
	Categories     []string
	ActiveCategory string
	Query          string
	Searched       bool
	Results        []domain.Product
	SearchError    string
	Map            MapFocus
}

type SellerState struct {
	Analytics domain.SellerAnalytics
	Products  []domain.Product
	Orders    []domain.Order
	Biker     *domain.NearestBiker
	Payments  []domain.PaymentRecord
}

type BikerState struct {
	Stats domain.BikerStats
	Jobs  []domain.Order
}

type AssistantState struct {
	Requests []domain.SosRequest
	// BoardOpen shows the request list on the overview once it was loaded
	// from there.
	BoardOpen bool
}

type AgentState struct {
	Stats   domain.AgentStats
	Sellers []domain.SellerSummary
}

// Notice is the inline status line of the auth forms.
type Notice struct {
	Text  string
	Error bool
}

// State is everything the dashboards render from. Collections are replaced
// wholesale on every fetch and never mutated in place, so a shallow copy is
// a safe snapshot.
type State struct {
	Session         *domain.Session
	View            domain.ViewID
	Geo             GeoState
	DiagnosticsOpen bool
	Ping            PingStatus
	PingMessage     string
	Notice          Notice
	Alert           string

	Buyer     BuyerState
	Seller    SellerState
	Biker     BikerState
	Assistant AssistantState
	Agent     AgentState
}

func newState() State {
	return State{
		Geo:         GeoState{Location: domain.DefaultCoordinate},
		PingMessage: "Not checked",
		Buyer:       BuyerState{ActiveCategory: domain.CategoryAll, Categories: domain.BaseCategories()},
	}
}

// Role is the signed-in role, or empty when signed out.
func (s State) Role() domain.Role {
	if !s.Session.Valid() {
		return ""
	}

	return s.Session.User.Role
}

func (s State) SignedIn() bool {
	return s.Session.Valid()
}

// VisibleSellers applies the active category filter.
func (b BuyerState) VisibleSellers() []domain.NearbySeller {
	return domain.FilterSellers(b.Sellers, b.ActiveCategory)
}

func (b BuyerState) SellerByID(id string) (domain.NearbySeller, bool) {
	for _, seller := range b.Sellers {
		if seller.ID.Value == id {
			return seller, true
		}
	}

	return domain.NearbySeller{}, false
}

func (s SellerState) ProductByID(id string) (domain.Product, bool) {
	for _, product := range s.Products {
		if product.ID.Value == id {
			return product, true
		}
	}

	return domain.Product{}, false
}
