package domain

type Product struct {
	ID            FlexString `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         FlexNumber `json:"price"`
	StockQuantity FlexNumber `json:"stock_quantity"`
	Category      string     `json:"category"`
	ShopName      string     `json:"shop_name"`
}

type NearbySeller struct {
	ID       FlexString `json:"id"`
	ShopName string     `json:"shop_name"`
	Category string     `json:"category"`
	Distance FlexNumber `json:"distance"`
	Lat      FlexNumber `json:"lat"`
	Lng      FlexNumber `json:"lng"`
}

// Location is the seller pin. ok is false when the backend sent no usable
// coordinate.
func (s NearbySeller) Location() (Coordinate, bool) {
	if !s.Lat.Valid || !s.Lng.Valid {
		return Coordinate{}, false
	}

	c := Coordinate{Lat: s.Lat.Value, Lng: s.Lng.Value}
	return c, c.Finite()
}

type NearestBiker struct {
	ID       FlexString `json:"id"`
	Name     string     `json:"name"`
	Phone    string     `json:"phone"`
	Distance FlexNumber `json:"distance"`
}

type Order struct {
	ID           FlexString `json:"id"`
	Amount       FlexNumber `json:"amount"`
	BuyerID      FlexString `json:"buyer_id"`
	Status       string     `json:"status"`
	BusinessName string     `json:"business_name"`
}

type SosRequest struct {
	ID               FlexString `json:"id"`
	IssueDescription string     `json:"issue_description"`
	DistanceKm       FlexNumber `json:"distance_km"`
	ClientPhone      string     `json:"client_phone"`
}

type SellerSummary struct {
	ID             FlexString `json:"id"`
	ShopName       string     `json:"shop_name"`
	Phone          string     `json:"phone"`
	ProductCount   FlexNumber `json:"product_count"`
	LowStockAlerts FlexNumber `json:"low_stock_alerts"`
}

type PaymentRecord struct {
	Amount  FlexNumber `json:"amount"`
	Receipt string     `json:"receipt"`
	Status  string     `json:"status"`
}

func (p PaymentRecord) StatusOrPending() string {
	if p.Status == "" {
		return "pending"
	}

	return p.Status
}

type SellerAnalytics struct {
	TotalOrders   FlexNumber `json:"total_orders"`
	TotalRevenue  FlexNumber `json:"total_revenue"`
	LowStockCount FlexNumber `json:"low_stock_count"`
}

type BikerStats struct {
	ActiveJobs    FlexNumber `json:"activeJobs"`
	CompletedJobs FlexNumber `json:"completedJobs"`
	Earnings      FlexNumber `json:"earnings"`
}

type AgentStats struct {
	TotalSellers       FlexNumber `json:"totalSellers"`
	ActiveRiders       FlexNumber `json:"activeRiders"`
	ActiveSOS          FlexNumber `json:"activeSOS"`
	CriticalStockCount FlexNumber `json:"criticalStockCount"`
	SystemVolume       FlexNumber `json:"systemVolume"`
	CommissionBalance  FlexNumber `json:"commissionBalance"`
}

type HealthStatus struct {
	Message  string `json:"message"`
	Database string `json:"database"`
}
