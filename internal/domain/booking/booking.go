package booking

import "time"

type Booking struct {
	ID                    int64      `json:"id"`
	ServiceID             int64      `json:"service_id"`
	ClientID              int64      `json:"client_id"`
	ProviderID            int64      `json:"provider_id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	Message               string     `json:"message,omitempty"`
	AgreedPrice           *float64   `json:"agreed_price,omitempty"`
	Status                Status     `json:"status"`
	WhatsAppChatInitiated bool       `json:"whatsapp_chat_initiated"`
	CancellationReason    string     `json:"cancellation_reason,omitempty"`
	CancelledBy           *int64     `json:"cancelled_by,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	AcceptedAt            *time.Time `json:"accepted_at,omitempty"`
	StartedAt             *time.Time `json:"started_at,omitempty"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
	CancelledAt           *time.Time `json:"cancelled_at,omitempty"`
}

// PartyOf returns which side of the booking userID is on.
func (b *Booking) PartyOf(userID int64) Party {
	switch userID {
	case b.ProviderID:
		return PartyProvider
	case b.ClientID:
		return PartyClient
	default:
		return PartyNone
	}
}

// Counterparty returns the other participant's id.
func (b *Booking) Counterparty(userID int64) int64 {
	if userID == b.ClientID {
		return b.ProviderID
	}
	return b.ClientID
}

// Event is one row of a booking's append-only status history.
type Event struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	BookingID  int64     `gorm:"index;not null" json:"booking_id"`
	FromStatus Status    `gorm:"size:20" json:"from_status"`
	ToStatus   Status    `gorm:"size:20;not null" json:"to_status"`
	ActorID    int64     `gorm:"not null" json:"actor_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Event) TableName() string { return "booking_events" }

// UserBookings groups a user's bookings by role in them.
type UserBookings struct {
	AsClient   []Booking `json:"as_client"`
	AsProvider []Booking `json:"as_provider"`
}
