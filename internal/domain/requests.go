package domain

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token string         `json:"token"`
	User  *User          `json:"user"`
	Stats map[string]any `json:"stats"`
}

type RegisterRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	ExtraDetail string `json:"extraDetail"`
}

type ResetPasswordRequest struct {
	Phone       string `json:"phone"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// ProductForm mirrors the multipart fields of the product endpoints. Values
// stay textual since they travel as form fields.
type ProductForm struct {
	Name          string
	Category      string
	Price         string
	StockQuantity string
	Description   string
	SellerID      string
}

type STKPushRequest struct {
	Phone  string     `json:"phone"`
	Amount float64    `json:"amount"`
	UserID FlexString `json:"userId"`
	Type   string     `json:"type"`
}

type SOSRequest struct {
	Issue          string  `json:"issue"`
	Region         string  `json:"region"`
	Phone          string  `json:"phone"`
	VehicleDetails string  `json:"vehicleDetails"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
}
