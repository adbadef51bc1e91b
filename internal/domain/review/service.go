package review

import (
	"context"
	"strings"
	"time"

	"talentnest/internal/domain/access"
	"talentnest/internal/domain/booking"
	"talentnest/internal/events"
	"talentnest/internal/logger"
	"talentnest/internal/pkg/apperr"
	"talentnest/internal/pkg/pagination"
)

type Service struct {
	reviews   Repository
	bookings  BookingReader
	publisher events.Publisher
	now       func() time.Time
}

func NewService(reviews Repository, bookings BookingReader, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		reviews:   reviews,
		bookings:  bookings,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create records the client's review of a completed booking.
func (s *Service) Create(ctx context.Context, actor access.Actor, bookingID int64, req CreateRequest) (*Review, error) {
	if !actor.Authenticated() {
		return nil, access.ErrUnauthenticated
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrBookingNotFound, "load booking")
	}
	if err := access.Authorize(actor, access.ActionReviewCreate, access.Between(b.ClientID, b.ProviderID)); err != nil {
		return nil, err
	}
	if b.PartyOf(actor.UserID) != booking.PartyClient {
		return nil, ErrNotClient
	}
	if b.Status != booking.StatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	now := s.now()
	rv := &Review{
		BookingID:  b.ID,
		ServiceID:  b.ServiceID,
		ClientID:   b.ClientID,
		ProviderID: b.ProviderID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if apperr.Is(err, apperr.KindInvalidState) {
			return nil, err
		}
		return nil, apperr.Dependency(err, "create review")
	}

	logger.InfoContext(ctx, "review created", "review_id", rv.ID, "booking_id", b.ID, "provider_id", b.ProviderID, "rating", rv.Rating)
	events.Emit(ctx, s.publisher, events.SubjectReviewCreated, createdEvent{
		ReviewID:   rv.ID,
		BookingID:  rv.BookingID,
		ProviderID: rv.ProviderID,
		Rating:     rv.Rating,
	})
	return rv, nil
}

// Respond attaches the provider's single public reply.
func (s *Service) Respond(ctx context.Context, actor access.Actor, reviewID int64, text string) (*Review, error) {
	if !actor.Authenticated() {
		return nil, access.ErrUnauthenticated
	}
	rv, err := s.load(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, access.ActionReviewRespond, access.Owned(rv.ProviderID)); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrResponseRequired
	}
	if rv.ProviderResponse != nil {
		return nil, ErrAlreadyResponded
	}

	if err := s.reviews.SetResponse(ctx, rv.ID, text, s.now()); err != nil {
		if apperr.Is(err, apperr.KindInvalidState) {
			return nil, err
		}
		return nil, apperr.Dependency(err, "save review response")
	}
	return s.load(ctx, rv.ID)
}

// ListForProvider is public; newest first.
func (s *Service) ListForProvider(ctx context.Context, providerID int64, p pagination.Params) (pagination.Page[Review], error) {
	p = p.Normalize()
	items, total, err := s.reviews.ListByProvider(ctx, providerID, p.Limit, p.Offset())
	if err != nil {
		return pagination.Page[Review]{}, apperr.Dependency(err, "list reviews")
	}
	return pagination.NewPage(items, total, p), nil
}

func (s *Service) load(ctx context.Context, id int64) (*Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrNotFound, "load review")
	}
	return rv, nil
}
