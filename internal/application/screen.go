package application

import (
	"fmt"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

type Mode int

const (
	ModeAuth Mode = iota
	ModeDashboard
)

// Screen is the render-ready projection of a State. Renderers draw it as is;
// it holds no behavior.
type Screen struct {
	Mode         Mode
	Role         domain.Role
	RoleSlug     string
	SessionLabel string
	Title        string
	Welcome      string
	Menu         []MenuEntry
	Diagnostics  *Diagnostics
	Sections     []Section
	Alert        string
	Notice       Notice
}

type MenuEntry struct {
	ID     domain.ViewID
	Label  string
	Active bool
}

type Diagnostics struct {
	BaseURL  string
	Ping     PingStatus
	Message  string
	GPS      string
	Location string
	GeoError string
}

type Section struct {
	Title    string
	Subtitle string
	Metrics  []Metric
	Chips    []Chip
	Map      *MapPanel
	Notice   *Notice
	// List marks a section whose Items are a list; an empty list shows
	// Empty instead.
	List    bool
	Items   []Item
	Empty   string
	Actions []Action
}

type Metric struct {
	Label string
	Value string
}

type Chip struct {
	Label  string
	Active bool
}

type MapPanel struct {
	Title       string
	Available   bool
	Coordinates string
	EmbedURL    string
	LinkURL     string
}

type Item struct {
	Title   string
	Detail  string
	Badge   string
	BadgeOK bool
	Actions []Action
}

const (
	msgMapUnavailable = "Map coordinates not available."
	msgNoBiker        = "No biker available right now."
)

// Project derives the screen for s. baseURL is the resolved API base shown
// in diagnostics. Identical input yields identical output.
func Project(s State, baseURL string) Screen {
	if !s.SignedIn() {
		return Screen{Mode: ModeAuth, Title: "JiraniSmart", Notice: s.Notice, Diagnostics: diagnostics(s, baseURL)}
	}

	user := s.Session.User
	role := user.Role
	view := domain.ResolveView(role, s.View)

	screen := Screen{
		Mode:         ModeDashboard,
		Role:         role,
		RoleSlug:     role.Slug(),
		SessionLabel: fmt.Sprintf("%s Session", role),
		Title:        fmt.Sprintf("%s Console", role),
		Welcome:      fmt.Sprintf("Welcome %s. All role tools are active.", user.DisplayName()),
		Alert:        s.Alert,
		Notice:       s.Notice,
		Diagnostics:  diagnostics(s, baseURL),
	}

	for _, entry := range domain.ViewsFor(role) {
		screen.Menu = append(screen.Menu, MenuEntry{ID: entry.ID, Label: entry.Label, Active: entry.ID == view})
	}

	switch role.Family() {
	case domain.FamilyBuyer:
		screen.Sections = buyerSections(s, view)
	case domain.FamilySeller:
		screen.Sections = sellerSections(s, view)
	case domain.FamilyBiker:
		screen.Sections = bikerSections(s, view)
	case domain.FamilyAssistant:
		screen.Sections = assistantSections(s, view)
	case domain.FamilyAgent:
		screen.Sections = agentSections(s, view)
	case domain.FamilyUnknown:
		screen.Sections = []Section{{Notice: &Notice{Text: fmt.Sprintf("Unsupported role: %s", role)}}}
	}

	return screen
}

// diagnostics is nil while the panel is closed.
func diagnostics(s State, baseURL string) *Diagnostics {
	if !s.DiagnosticsOpen {
		return nil
	}

	return &Diagnostics{
		BaseURL:  baseURL,
		Ping:     s.Ping,
		Message:  s.PingMessage,
		GPS:      s.Geo.Status.String(),
		Location: s.Geo.Location.Format(6),
		GeoError: s.Geo.Error,
	}
}

func buyerSections(s State, view domain.ViewID) []Section {
	if view == domain.ViewSOS {
		return []Section{{
			Title:    "Emergency SOS",
			Subtitle: "Broadcast emergency requests to nearby assistants/mechanics.",
			Actions:  []Action{{ID: ActionSendSOS, Label: "Send SOS"}},
		}}
	}

	b := s.Buyer

	categories := Section{
		Title: "Nearby Categories",
		Actions: []Action{
			{ID: ActionEnableGPS, Label: "Enable GPS"},
			{ID: ActionRefreshLocation, Label: "Refresh Location"},
			{ID: ActionRefreshSellers, Label: "Refresh Sellers"},
		},
	}
	for _, category := range b.Categories {
		categories.Chips = append(categories.Chips, Chip{Label: category, Active: category == b.ActiveCategory})
	}

	search := Section{
		Title:    "Product Search",
		Subtitle: "Search products by name. Category follows your current selection.",
		Actions:  []Action{{ID: ActionSearch, Label: "Search"}},
	}
	switch {
	case b.SearchError != "":
		search.Notice = &Notice{Text: b.SearchError, Error: true}
	case b.Searched:
		search.List = true
		search.Empty = "No products found for this search."
		for _, p := range b.Results {
			search.Items = append(search.Items, Item{
				Title: orDefault(p.Name, "Product"),
				Detail: fmt.Sprintf("%s • %s • Stock %s",
					orDefault(p.Category, domain.CategoryGeneral),
					orDefault(p.ShopName, "Local Seller"),
					number(p.StockQuantity)),
				Badge: "KSh " + fixed(p.Price, 0),
			})
		}
	}

	businesses := Section{
		Title: "Nearby Businesses",
		Map:   mapPanel(b.Map),
		List:  true,
		Empty: "No nearby businesses found.",
	}
	for _, seller := range b.VisibleSellers() {
		id := seller.ID.Value
		businesses.Items = append(businesses.Items, Item{
			Title:  orDefault(seller.ShopName, "Shop"),
			Detail: fmt.Sprintf("%s • %s km away", seller.CategoryOrGeneral(), fixed(seller.Distance, 1)),
			Actions: []Action{
				{ID: ActionViewMap, Label: "View Map", Ref: id},
				{ID: ActionNearestBiker, Label: "Nearest Biker", Ref: id},
			},
		})
	}

	return []Section{categories, search, businesses}
}

func mapPanel(focus MapFocus) *MapPanel {
	title := orDefault(focus.Title, yourLocation)
	if !focus.Valid || !focus.Location.Finite() {
		return &MapPanel{Title: title}
	}

	at := focus.Location
	return &MapPanel{
		Title:       title,
		Available:   true,
		Coordinates: at.Format(5),
		EmbedURL:    domain.MapEmbedURL(at.Lat, at.Lng, 0),
		LinkURL:     domain.MapLinkURL(at.Lat, at.Lng),
	}
}

func sellerSections(s State, view domain.ViewID) []Section {
	seller := s.Seller

	switch view {
	case domain.ViewProducts:
		add := Section{
			Title:    "Add Product",
			Subtitle: "Name, category, price, stock quantity and description.",
			Actions:  []Action{{ID: ActionAddProduct, Label: "Add Product"}},
		}
		list := Section{Title: "Your Products", List: true, Empty: "No products available."}
		for _, p := range seller.Products {
			id := p.ID.Value
			list.Items = append(list.Items, Item{
				Title:  p.Name,
				Detail: fmt.Sprintf("KSh %s • Stock %s • %s", number(p.Price), number(p.StockQuantity), orDefault(p.Category, domain.CategoryGeneral)),
				Actions: []Action{
					{ID: ActionUpdateStock, Label: "Update Stock", Ref: id},
					{ID: ActionDeleteProduct, Label: "Delete", Ref: id},
				},
			})
		}
		return []Section{add, list}

	case domain.ViewLinking:
		nearest := Section{Title: "Nearest Biker"}
		if biker := seller.Biker; biker != nil {
			nearest.Notice = &Notice{Text: fmt.Sprintf("%s • %s • %s km",
				orDefault(biker.Name, "Biker"), orDefault(biker.Phone, "No phone"), fixed(biker.Distance, 1))}
		} else {
			nearest.Notice = &Notice{Text: msgNoBiker, Error: true}
		}

		pending := Section{Title: "Pending Orders", List: true, Empty: "No pending orders."}
		for _, o := range seller.Orders {
			id := o.ID.Value
			pending.Items = append(pending.Items, Item{
				Title:   "Order #" + id,
				Detail:  fmt.Sprintf("KSh %s • Buyer %s • %s", number(o.Amount), orDefault(o.BuyerID.Value, "N/A"), o.Status),
				Actions: []Action{{ID: ActionLinkOrder, Label: "Link", Ref: id, Disabled: seller.Biker == nil}},
			})
		}
		return []Section{nearest, pending}

	case domain.ViewPayments:
		history := Section{Title: "Payment History", List: true, Empty: "No payments found."}
		for _, p := range seller.Payments {
			status := p.StatusOrPending()
			history.Items = append(history.Items, Item{
				Title:   "KSh " + number(p.Amount),
				Detail:  fmt.Sprintf("%s • %s", orDefault(p.Receipt, "N/A"), status),
				Badge:   status,
				BadgeOK: p.Status == "completed",
			})
		}
		return []Section{history}

	default:
		a := seller.Analytics
		return []Section{
			{
				Title: "Seller Metrics",
				Metrics: []Metric{
					{Label: "Total Orders", Value: number(a.TotalOrders)},
					{Label: "Revenue", Value: "KSh " + number(a.TotalRevenue)},
					{Label: "Low Stock", Value: number(a.LowStockCount)},
				},
			},
			{
				Title: "Quick Actions",
				Actions: []Action{
					navigate("Manage Products", domain.ViewProducts),
					navigate("Link Order to Biker", domain.ViewLinking),
				},
			},
		}
	}
}

func bikerSections(s State, view domain.ViewID) []Section {
	switch view {
	case domain.ViewJobs:
		jobs := Section{Title: "Available Jobs", List: true, Empty: "No available jobs."}
		for _, j := range s.Biker.Jobs {
			id := j.ID.Value
			jobs.Items = append(jobs.Items, Item{
				Title:  fmt.Sprintf("%s • Order #%s", orDefault(j.BusinessName, "Merchant"), id),
				Detail: "Amount: KSh " + number(j.Amount),
				Actions: []Action{
					{ID: ActionAcceptJob, Label: "Accept", Ref: id},
					{ID: ActionPickupJob, Label: "Pickup", Ref: id},
					{ID: ActionCompleteJob, Label: "Complete", Ref: id},
				},
			})
		}
		return []Section{jobs}

	case domain.ViewSubscription:
		return []Section{{
			Title:    "Subscription Payment",
			Subtitle: "Renew biker access with STK Push.",
			Actions:  []Action{{ID: ActionSubscribe, Label: "Send STK Push"}},
		}}

	default:
		stats := s.Biker.Stats
		return []Section{{
			Title: "Biker Metrics",
			Metrics: []Metric{
				{Label: "Active Jobs", Value: number(stats.ActiveJobs)},
				{Label: "Completed", Value: number(stats.CompletedJobs)},
				{Label: "Earnings", Value: "KSh " + fixed(stats.Earnings, 0)},
			},
			Actions: []Action{
				navigate("Open Jobs", domain.ViewJobs),
				navigate("Subscription", domain.ViewSubscription),
			},
		}}
	}
}

func assistantSections(s State, view domain.ViewID) []Section {
	board := Section{Title: "Nearby SOS Requests", List: true, Empty: "No SOS requests nearby."}
	for _, r := range s.Assistant.Requests {
		id := r.ID.Value
		board.Items = append(board.Items, Item{
			Title:  fmt.Sprintf("Request #%s • %s", id, orDefault(r.IssueDescription, "Emergency")),
			Detail: fmt.Sprintf("%s km • %s", fixed(r.DistanceKm, 1), orDefault(r.ClientPhone, "No phone")),
			Actions: []Action{
				{ID: ActionAcceptSOS, Label: "Accept", Ref: id},
				{ID: ActionCompleteSOS, Label: "Complete", Ref: id},
			},
		})
	}

	if view == domain.ViewRequests {
		return []Section{board}
	}

	controls := Section{
		Title: "Assistant Controls",
		Actions: []Action{
			{ID: ActionLoadSOS, Label: "Load Nearby SOS"},
			navigate("Open Request Board", domain.ViewRequests),
		},
	}
	if s.Assistant.BoardOpen {
		return []Section{controls, board}
	}

	return []Section{controls}
}

func agentSections(s State, view domain.ViewID) []Section {
	if view == domain.ViewSellers {
		registry := Section{Title: "Seller Registry", List: true, Empty: "No sellers found."}
		for _, seller := range s.Agent.Sellers {
			registry.Items = append(registry.Items, Item{
				Title: orDefault(seller.ShopName, "Unnamed Shop"),
				Detail: fmt.Sprintf("%s • Products %s • Low stock %s",
					orDefault(seller.Phone, "N/A"), number(seller.ProductCount), number(seller.LowStockAlerts)),
				Actions: []Action{{ID: ActionDeactivate, Label: "Deactivate", Ref: seller.ID.Value}},
			})
		}
		return []Section{registry}
	}

	stats := s.Agent.Stats
	return []Section{{
		Title: "Regional Overview",
		Metrics: []Metric{
			{Label: "Active Shops", Value: number(stats.TotalSellers)},
			{Label: "Active Riders", Value: number(stats.ActiveRiders)},
			{Label: "Active SOS", Value: number(stats.ActiveSOS)},
			{Label: "Critical Stock", Value: number(stats.CriticalStockCount)},
			{Label: "System Volume", Value: "KSh " + number(stats.SystemVolume)},
			{Label: "Commission", Value: "KSh " + number(stats.CommissionBalance)},
		},
		Actions: []Action{navigate("Open Seller Registry", domain.ViewSellers)},
	}}
}

func navigate(label string, view domain.ViewID) Action {
	return Action{ID: ActionNavigate, Label: label, Ref: string(view)}
}

// number renders a lenient numeric field, with 0 for missing values.
func number(n domain.FlexNumber) string {
	return domain.FormatNumber(n.Float())
}

func fixed(n domain.FlexNumber, decimals int) string {
	return domain.FormatFixed(n.Float(), decimals)
}

// Actions lists every action on the screen in display order: each section's
// own actions, then the actions of its items.
func (s Screen) Actions() []Action {
	var out []Action
	for _, section := range s.Sections {
		out = append(out, section.Actions...)
		for _, item := range section.Items {
			out = append(out, item.Actions...)
		}
	}

	return out
}
