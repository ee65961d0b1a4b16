package domain

type ViewID string

const (
	ViewOverview     ViewID = "overview"
	ViewMarketplace  ViewID = "marketplace"
	ViewSOS          ViewID = "sos"
	ViewProducts     ViewID = "products"
	ViewLinking      ViewID = "linking"
	ViewPayments     ViewID = "payments"
	ViewJobs         ViewID = "jobs"
	ViewSubscription ViewID = "subscription"
	ViewRequests     ViewID = "requests"
	ViewSellers      ViewID = "sellers"
)

type ViewEntry struct {
	ID    ViewID
	Label string
}

// ViewsFor returns the ordered menu for a role. Unknown roles get a single
// synthesized overview entry.
func ViewsFor(role Role) []ViewEntry {
	switch role.Family() {
	case FamilyBuyer:
		return []ViewEntry{
			{ID: ViewMarketplace, Label: "Marketplace"},
			{ID: ViewSOS, Label: "Emergency SOS"},
		}
	case FamilySeller:
		return []ViewEntry{
			{ID: ViewOverview, Label: "Seller Dashboard"},
			{ID: ViewProducts, Label: "Manage Products"},
			{ID: ViewLinking, Label: "Order-Biker Linking"},
			{ID: ViewPayments, Label: "Payments"},
		}
	case FamilyBiker:
		return []ViewEntry{
			{ID: ViewOverview, Label: "Biker Dashboard"},
			{ID: ViewJobs, Label: "Jobs Workflow"},
			{ID: ViewSubscription, Label: "Subscription"},
		}
	case FamilyAssistant:
		return []ViewEntry{
			{ID: ViewOverview, Label: "Assistant Dashboard"},
			{ID: ViewRequests, Label: "Rescue Requests"},
		}
	case FamilyAgent:
		return []ViewEntry{
			{ID: ViewOverview, Label: "Agent Dashboard"},
			{ID: ViewSellers, Label: "Seller Registry"},
		}
	default:
		return []ViewEntry{{ID: ViewOverview, Label: string(role) + " Dashboard"}}
	}
}

func DefaultViewFor(role Role) ViewID {
	if role.Family() == FamilyBuyer {
		return ViewMarketplace
	}

	return ViewOverview
}

func ViewAllowed(role Role, view ViewID) bool {
	for _, entry := range ViewsFor(role) {
		if entry.ID == view {
			return true
		}
	}

	return false
}

// ResolveView coerces a view outside the role's menu to the role default.
func ResolveView(role Role, view ViewID) ViewID {
	if ViewAllowed(role, view) {
		return view
	}

	return DefaultViewFor(role)
}
