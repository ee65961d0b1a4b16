package application

import (
	"testing"

	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedInState(role domain.Role, view domain.ViewID) State {
	s := newState()
	s.Session = &domain.Session{Token: "tok-1", User: &domain.User{ID: domain.NewFlexString("5"), Role: role, Name: "Wanjiru"}}
	s.View = view
	return s
}

func TestProjectSignedOutShowsAuth(t *testing.T) {
	s := newState()
	s.Notice = Notice{Text: "Registration successful. Please login."}

	screen := Project(s, "https://api.example.com/api")

	assert.Equal(t, ModeAuth, screen.Mode)
	assert.Equal(t, "JiraniSmart", screen.Title)
	assert.Equal(t, s.Notice, screen.Notice)
	assert.Empty(t, screen.Menu)
	assert.Nil(t, screen.Diagnostics)
}

func TestProjectUnknownRole(t *testing.T) {
	screen := Project(signedInState("Admin", ""), "")

	assert.Equal(t, ModeDashboard, screen.Mode)
	assert.Equal(t, "Admin Console", screen.Title)
	assert.Equal(t, []MenuEntry{{ID: domain.ViewOverview, Label: "Admin Dashboard", Active: true}}, screen.Menu)
	require.Len(t, screen.Sections, 1)
	assert.Equal(t, &Notice{Text: "Unsupported role: Admin"}, screen.Sections[0].Notice)
}

func TestProjectCoercesForeignView(t *testing.T) {
	screen := Project(signedInState(domain.RoleSeller, domain.ViewJobs), "")

	require.Len(t, screen.Menu, 4)
	assert.True(t, screen.Menu[0].Active)
	assert.Equal(t, "Seller Metrics", screen.Sections[0].Title)
	assert.Equal(t, "Welcome Wanjiru. All role tools are active.", screen.Welcome)
	assert.Equal(t, "Seller Session", screen.SessionLabel)
}

func TestProjectBuyerMarketplace(t *testing.T) {
	s := signedInState(domain.RoleBuyer, domain.ViewMarketplace)
	s.Buyer.Sellers = []domain.NearbySeller{
		{ID: domain.NewFlexString("11"), ShopName: "Mama Mboga", Category: "Grocery", Distance: domain.NewFlexNumber(1.24)},
		{ID: domain.NewFlexString("12"), Category: "Pharmacy"},
	}
	s.Buyer.ActiveCategory = "Grocery"
	s.Buyer.Map = MapFocus{Title: "Mama Mboga", Location: domain.Coordinate{Lat: -1.2841, Lng: 36.8155}, Valid: true}

	screen := Project(s, "")

	require.Len(t, screen.Sections, 3)
	chips := screen.Sections[0].Chips
	require.NotEmpty(t, chips)
	assert.Equal(t, Chip{Label: domain.CategoryAll}, chips[0])
	assert.Contains(t, chips, Chip{Label: "Grocery", Active: true})

	search := screen.Sections[1]
	assert.False(t, search.List)
	assert.Nil(t, search.Notice)

	businesses := screen.Sections[2]
	require.Len(t, businesses.Items, 1)
	assert.Equal(t, "Mama Mboga", businesses.Items[0].Title)
	assert.Equal(t, "Grocery • 1.2 km away", businesses.Items[0].Detail)
	assert.Equal(t, []Action{
		{ID: ActionViewMap, Label: "View Map", Ref: "11"},
		{ID: ActionNearestBiker, Label: "Nearest Biker", Ref: "11"},
	}, businesses.Items[0].Actions)

	require.NotNil(t, businesses.Map)
	assert.True(t, businesses.Map.Available)
	assert.Equal(t, "-1.28410, 36.81550", businesses.Map.Coordinates)
	assert.Equal(t, "https://www.openstreetmap.org/?mlat=-1.2841&mlon=36.8155#map=15/-1.2841/36.8155", businesses.Map.LinkURL)
	assert.Contains(t, businesses.Map.EmbedURL, "marker=-1.2841%2C36.8155")
}

func TestProjectSearchStates(t *testing.T) {
	s := signedInState(domain.RoleBuyer, domain.ViewMarketplace)
	s.Buyer.Searched = true

	search := Project(s, "").Sections[1]
	assert.True(t, search.List)
	assert.Empty(t, search.Items)
	assert.Equal(t, "No products found for this search.", search.Empty)

	s.Buyer.Results = []domain.Product{{Name: "Milk", Price: domain.NewFlexNumber(64.6), StockQuantity: domain.NewFlexNumber(12)}}
	search = Project(s, "").Sections[1]
	require.Len(t, search.Items, 1)
	assert.Equal(t, "General • Local Seller • Stock 12", search.Items[0].Detail)
	assert.Equal(t, "KSh 65", search.Items[0].Badge)

	s.Buyer.SearchError = "Search offline"
	search = Project(s, "").Sections[1]
	assert.Equal(t, &Notice{Text: "Search offline", Error: true}, search.Notice)
	assert.Empty(t, search.Items)
}

func TestProjectMapWithoutCoordinates(t *testing.T) {
	s := signedInState(domain.RoleBuyer, domain.ViewMarketplace)
	s.Buyer.Map = MapFocus{Title: "Fundi Hub"}

	panel := Project(s, "").Sections[2].Map

	assert.Equal(t, &MapPanel{Title: "Fundi Hub"}, panel)
}

func TestProjectLinkDisabledWithoutBiker(t *testing.T) {
	s := signedInState(domain.RoleSeller, domain.ViewLinking)
	s.Seller.Orders = []domain.Order{{ID: domain.NewFlexString("501"), Amount: domain.NewFlexNumber(1200), Status: "pending"}}

	screen := Project(s, "")
	require.Len(t, screen.Sections, 2)
	order := screen.Sections[1].Items[0]
	assert.Equal(t, "Order #501", order.Title)
	assert.Equal(t, "KSh 1200 • Buyer N/A • pending", order.Detail)
	assert.True(t, order.Actions[0].Disabled)

	s.Seller.Biker = &domain.NearestBiker{ID: domain.NewFlexString("9"), Name: "Otieno", Phone: "0722000111", Distance: domain.NewFlexNumber(1.24)}
	screen = Project(s, "")
	assert.Equal(t, &Notice{Text: "Otieno • 0722000111 • 1.2 km"}, screen.Sections[0].Notice)
	assert.False(t, screen.Sections[1].Items[0].Actions[0].Disabled)
}

func TestProjectDiagnosticsPanel(t *testing.T) {
	s := signedInState(domain.RoleBiker, domain.ViewOverview)
	s.DiagnosticsOpen = true

	screen := Project(s, "https://jirani-backend.onrender.com/api")

	require.NotNil(t, screen.Diagnostics)
	assert.Equal(t, Diagnostics{
		BaseURL:  "https://jirani-backend.onrender.com/api",
		Ping:     PingUnknown,
		Message:  "Not checked",
		GPS:      "Not requested",
		Location: "-1.286389, 36.817223",
	}, *screen.Diagnostics)
}

func TestProjectBodabodaUsesBikerViews(t *testing.T) {
	s := signedInState(domain.RoleBodaboda, domain.ViewSubscription)

	screen := Project(s, "")

	assert.Equal(t, "bodaboda", screen.RoleSlug)
	require.Len(t, screen.Menu, 3)
	assert.True(t, screen.Menu[2].Active)
	assert.Equal(t, "Subscription Payment", screen.Sections[0].Title)
}

func TestProjectIsDeterministic(t *testing.T) {
	s := signedInState(domain.RoleAgent, domain.ViewSellers)
	s.Agent.Sellers = []domain.SellerSummary{{ID: domain.NewFlexString("41"), ShopName: "Kibanda", ProductCount: domain.NewFlexNumber(8)}}

	first := Project(s, "x")
	second := Project(s, "x")

	assert.Equal(t, first, second)
	assert.Equal(t, "N/A • Products 8 • Low stock 0", first.Sections[0].Items[0].Detail)
}

func TestScreenActionsFollowDisplayOrder(t *testing.T) {
	s := signedInState(domain.RoleSeller, domain.ViewProducts)
	s.Seller.Products = []domain.Product{{ID: domain.NewFlexString("21"), Name: "Sugar 1kg"}}

	actions := Project(s, "").Actions()

	require.Len(t, actions, 3)
	assert.Equal(t, ActionAddProduct, actions[0].ID)
	assert.Equal(t, Action{ID: ActionUpdateStock, Label: "Update Stock", Ref: "21"}, actions[1])
	assert.Equal(t, ActionDeleteProduct, actions[2].ID)
}
