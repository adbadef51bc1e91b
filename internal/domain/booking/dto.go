package booking

type CreateBookingRequest struct {
	ServiceID   int64    `json:"service_id" validate:"required,gt=0"`
	ProviderID  *int64   `json:"provider_id" validate:"omitempty,gt=0"`
	Message     string   `json:"message" validate:"omitempty,max=2000"`
	AgreedPrice *float64 `json:"agreed_price" validate:"omitempty,gte=0"`
}

type ReasonRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}
