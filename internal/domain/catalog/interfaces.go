package catalog

import (
	"context"

	"talentnest/internal/domain/auth"
)

type ListingRepositoryInterface interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id int64) (*Listing, error)
	UpdateDetails(ctx context.Context, l *Listing) error
	UpdateStatus(ctx context.Context, id int64, status Status, isActive bool) error
	SetActive(ctx context.Context, id int64, active bool) error
	IncrementViews(ctx context.Context, id int64) error
	ListDiscoverable(ctx context.Context, f ListFilter) ([]Listing, int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Listing, error)
}

// OwnerReader resolves listing owners for the verification gate.
type OwnerReader interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
}
