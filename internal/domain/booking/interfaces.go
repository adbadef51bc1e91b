package booking

import (
	"context"
	"time"

	"talentnest/internal/domain/auth"
	"talentnest/internal/domain/catalog"
	"talentnest/internal/domain/contact"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	Transition(ctx context.Context, in TransitionInput) error
	MarkChatInitiated(ctx context.Context, id int64) error
	ListByClient(ctx context.Context, clientID int64, status Status) ([]Booking, error)
	ListByProvider(ctx context.Context, providerID int64, status Status) ([]Booking, error)
	History(ctx context.Context, bookingID int64) ([]Event, error)
}

type TransitionInput struct {
	BookingID int64
	From      Status
	To        Status
	ActorID   int64
	At        time.Time
	Reason    string
}

type ListingReader interface {
	GetByID(ctx context.Context, id int64) (*catalog.Listing, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
}

type ContactConnector interface {
	Connect(ctx context.Context, req contact.Request) (*contact.Link, error)
}
