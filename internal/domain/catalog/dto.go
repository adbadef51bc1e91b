package catalog

type CreateServiceRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=255"`
	Description   string   `json:"description" validate:"required,min=10,max=5000"`
	Category      string   `json:"category" validate:"required,max=100"`
	Subcategory   string   `json:"subcategory" validate:"omitempty,max=100"`
	PriceRange    string   `json:"price_range" validate:"omitempty,max=100"`
	DeliveryTime  string   `json:"delivery_time" validate:"omitempty,max=100"`
	Tags          []string `json:"tags" validate:"omitempty,dive,max=50"`
	PortfolioURLs []string `json:"portfolio_urls" validate:"omitempty,max=20,dive,url"`
}

// UpdateServiceRequest applies only the fields that are present.
type UpdateServiceRequest struct {
	Title         *string   `json:"title" validate:"omitempty,min=3,max=255"`
	Description   *string   `json:"description" validate:"omitempty,min=10,max=5000"`
	Category      *string   `json:"category" validate:"omitempty,max=100"`
	Subcategory   *string   `json:"subcategory" validate:"omitempty,max=100"`
	PriceRange    *string   `json:"price_range" validate:"omitempty,max=100"`
	DeliveryTime  *string   `json:"delivery_time" validate:"omitempty,max=100"`
	Tags          *[]string `json:"tags" validate:"omitempty"`
	PortfolioURLs *[]string `json:"portfolio_urls" validate:"omitempty"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
