package sellerservice

// Service модель услуги из SellerService
type Service struct {
	ID              int64    `json:"id"`
	CompanyID       int64    `json:"company_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           *float64 `json:"price"` // в евро (основных единицах)
	DurationMinutes *int     `json:"duration_minutes"`
}

// ErrorResponse модель ошибки от SellerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
