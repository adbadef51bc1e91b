package review

import "time"

// Review is a client's rating of the provider on one completed booking.
type Review struct {
	ID               int64      `json:"id"`
	BookingID        int64      `json:"booking_id"`
	ServiceID        int64      `json:"service_id"`
	ClientID         int64      `json:"client_id"`
	ProviderID       int64      `json:"provider_id"`
	Rating           int        `json:"rating"`
	Comment          string     `json:"comment,omitempty"`
	ProviderResponse *string    `json:"provider_response,omitempty"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type createdEvent struct {
	ReviewID   int64 `json:"review_id"`
	BookingID  int64 `json:"booking_id"`
	ProviderID int64 `json:"provider_id"`
	Rating     int   `json:"rating"`
}
