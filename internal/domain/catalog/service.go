package catalog

import (
	"context"
	"strings"

	"talentnest/internal/domain/access"
	"talentnest/internal/logger"
	"talentnest/internal/pkg/apperr"
	"talentnest/internal/pkg/pagination"
)

type Service struct {
	listings ListingRepositoryInterface
	owners   OwnerReader
}

func NewService(listings ListingRepositoryInterface, owners OwnerReader) *Service {
	return &Service{listings: listings, owners: owners}
}

// CreateService adds a pending listing owned by the calling artisan.
func (s *Service) CreateService(ctx context.Context, actor access.Actor, req CreateServiceRequest) (*Listing, error) {
	if err := access.Authorize(actor, access.ActionServiceCreate, access.Resource{}); err != nil {
		return nil, err
	}

	tags, err := NormalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	l := &Listing{
		UserID:        actor.UserID,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Category:      strings.TrimSpace(req.Category),
		Subcategory:   strings.TrimSpace(req.Subcategory),
		PriceRange:    strings.TrimSpace(req.PriceRange),
		DeliveryTime:  strings.TrimSpace(req.DeliveryTime),
		Tags:          tags,
		PortfolioURLs: nonNil(req.PortfolioURLs),
		Status:        StatusPending,
		IsActive:      true,
	}
	if err := requireText(l); err != nil {
		return nil, err
	}

	if err := s.listings.Create(ctx, l); err != nil {
		return nil, apperr.Dependency(err, "create service")
	}
	return l, nil
}

// UpdateService edits owner-controlled fields. Status is never touched.
func (s *Service) UpdateService(ctx context.Context, actor access.Actor, id int64, req UpdateServiceRequest) (*Listing, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, access.ActionServiceUpdate, access.Owned(l.UserID)); err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&l.Title, req.Title)
	set(&l.Description, req.Description)
	set(&l.Category, req.Category)
	set(&l.Subcategory, req.Subcategory)
	set(&l.PriceRange, req.PriceRange)
	set(&l.DeliveryTime, req.DeliveryTime)

	if req.Tags != nil {
		tags, err := NormalizeTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		l.Tags = tags
	}
	if req.PortfolioURLs != nil {
		l.PortfolioURLs = nonNil(*req.PortfolioURLs)
	}
	if err := requireText(l); err != nil {
		return nil, err
	}

	if err := s.listings.UpdateDetails(ctx, l); err != nil {
		return nil, apperr.FromRepo(err, ErrServiceNotFound, "update service")
	}
	return s.load(ctx, id)
}

// SetServiceStatus is the admin moderation override. A listing can only go
// active once its owner is verified.
func (s *Service) SetServiceStatus(ctx context.Context, actor access.Actor, id int64, raw string) (*Listing, error) {
	if err := access.Authorize(actor, access.ActionServiceSetStatus, access.Resource{}); err != nil {
		return nil, err
	}
	status, err := ParseStatus(raw)
	if err != nil {
		return nil, err
	}

	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == StatusActive {
		owner, err := s.owners.GetByID(ctx, l.UserID)
		if err != nil {
			return nil, apperr.FromRepo(err, ErrOwnerNotVerified, "load owner")
		}
		if !owner.IsVerified {
			return nil, ErrOwnerNotVerified
		}
	}

	isActive := status == StatusActive
	if err := s.listings.UpdateStatus(ctx, id, status, isActive); err != nil {
		return nil, apperr.FromRepo(err, ErrServiceNotFound, "update service status")
	}
	l.Status = status
	l.IsActive = isActive
	return l, nil
}

// ListActive returns one page of discoverable listings.
func (s *Service) ListActive(ctx context.Context, query, category string, p pagination.Params) (pagination.Page[Listing], error) {
	p = p.Normalize()
	items, total, err := s.listings.ListDiscoverable(ctx, ListFilter{
		Query:    query,
		Category: category,
		Limit:    p.Limit,
		Offset:   p.Offset(),
	})
	if err != nil {
		return pagination.Page[Listing]{}, apperr.Dependency(err, "list services")
	}
	return pagination.NewPage(items, total, p), nil
}

// GetService returns a listing. Discoverable listings are public and count a
// view; hidden ones are visible only to the owner and admins.
func (s *Service) GetService(ctx context.Context, viewer access.Actor, id int64) (*Listing, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !l.Discoverable() {
		if !access.Can(viewer, access.ActionServiceViewHidden, access.Owned(l.UserID)) {
			return nil, ErrServiceNotFound
		}
		return l, nil
	}

	if viewer.UserID != l.UserID {
		if err := s.listings.IncrementViews(ctx, id); err != nil {
			logger.WarnContext(ctx, "failed to count service view", "service_id", id, "error", err)
		} else {
			l.ViewCount++
		}
	}
	return l, nil
}

func (s *Service) ListByOwner(ctx context.Context, actor access.Actor) ([]Listing, error) {
	if err := access.Authorize(actor, access.ActionServiceCreate, access.Resource{}); err != nil {
		return nil, err
	}
	items, err := s.listings.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.Dependency(err, "list own services")
	}
	if items == nil {
		items = []Listing{}
	}
	return items, nil
}

// DeactivateService hides the listing without changing its moderation status.
func (s *Service) DeactivateService(ctx context.Context, actor access.Actor, id int64) (*Listing, error) {
	return s.setActive(ctx, actor, id, false)
}

// ReactivateService restores visibility. Only approved listings qualify.
func (s *Service) ReactivateService(ctx context.Context, actor access.Actor, id int64) (*Listing, error) {
	return s.setActive(ctx, actor, id, true)
}

func (s *Service) setActive(ctx context.Context, actor access.Actor, id int64, active bool) (*Listing, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, access.ActionServiceUpdate, access.Owned(l.UserID)); err != nil {
		return nil, err
	}
	if active && l.Status != StatusActive {
		return nil, ErrInvalidStatusTransition
	}
	if l.IsActive == active {
		return l, nil
	}

	if err := s.listings.SetActive(ctx, id, active); err != nil {
		return nil, apperr.FromRepo(err, ErrServiceNotFound, "toggle service")
	}
	l.IsActive = active
	return l, nil
}

// GetByID loads a listing without visibility checks. Used by bookings.
func (s *Service) GetByID(ctx context.Context, id int64) (*Listing, error) {
	return s.load(ctx, id)
}

func (s *Service) load(ctx context.Context, id int64) (*Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrServiceNotFound, "load service")
	}
	return l, nil
}

func requireText(l *Listing) error {
	switch {
	case l.Title == "":
		return apperr.Validation("title must not be empty")
	case l.Description == "":
		return apperr.Validation("description must not be empty")
	case l.Category == "":
		return apperr.Validation("category must not be empty")
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
