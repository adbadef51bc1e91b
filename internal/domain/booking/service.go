package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"talentnest/internal/domain/access"
	"talentnest/internal/domain/auth"
	"talentnest/internal/domain/contact"
	"talentnest/internal/events"
	"talentnest/internal/metrics"
	"talentnest/internal/pkg/apperr"
)

type Service struct {
	bookings  BookingRepository
	listings  ListingReader
	users     UserReader
	contacts  ContactConnector
	publisher events.Publisher
	now       func() time.Time
}

func NewService(
	bookings BookingRepository,
	listings ListingReader,
	users UserReader,
	contacts ContactConnector,
	publisher events.Publisher,
) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		bookings:  bookings,
		listings:  listings,
		users:     users,
		contacts:  contacts,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type statusChangedEvent struct {
	BookingID int64  `json:"booking_id"`
	From      Status `json:"from,omitempty"`
	To        Status `json:"to"`
	ActorID   int64  `json:"actor_id"`
}

// CreateBooking books a discoverable service for the calling client. The
// provider is always taken from the service owner.
func (s *Service) CreateBooking(ctx context.Context, actor access.Actor, req CreateBookingRequest) (*Booking, error) {
	if err := access.Authorize(actor, access.ActionBookingCreate, access.Resource{}); err != nil {
		return nil, err
	}

	l, err := s.listings.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || apperr.Is(err, apperr.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, apperr.FromRepo(err, ErrServiceNotFound, "load service")
	}
	if !l.Discoverable() {
		return nil, ErrServiceNotFound
	}
	if req.ProviderID != nil && *req.ProviderID != l.UserID {
		return nil, ErrProviderMismatch
	}
	if l.UserID == actor.UserID {
		return nil, ErrSelfBooking
	}
	if req.AgreedPrice != nil && *req.AgreedPrice < 0 {
		return nil, ErrNegativePrice
	}

	b := &Booking{
		ServiceID:   l.ID,
		ClientID:    actor.UserID,
		ProviderID:  l.UserID,
		Title:       l.Title,
		Description: l.Description,
		Message:     strings.TrimSpace(req.Message),
		AgreedPrice: req.AgreedPrice,
		Status:      StatusPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, apperr.Dependency(err, "create booking")
	}

	metrics.BookingTransitions.WithLabelValues("", string(StatusPending)).Inc()
	events.Emit(ctx, s.publisher, events.SubjectBookingStatusChanged, statusChangedEvent{
		BookingID: b.ID, To: StatusPending, ActorID: actor.UserID,
	})
	return b, nil
}

// Accept moves pending -> accepted. Provider only.
func (s *Service) Accept(ctx context.Context, actor access.Actor, id int64) (*Booking, error) {
	return s.transition(ctx, actor, id, StatusAccepted, "")
}

// Decline is the provider refusing a pending request.
func (s *Service) Decline(ctx context.Context, actor access.Actor, id int64, reason string) (*Booking, error) {
	b, err := s.loadParticipant(ctx, actor, access.ActionBookingTransition, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusPending {
		return nil, ErrInvalidStatusTransition
	}
	if b.PartyOf(actor.UserID) != PartyProvider {
		return nil, ErrWrongParty
	}
	return s.apply(ctx, actor, b, StatusCancelled, reason)
}

func (s *Service) Start(ctx context.Context, actor access.Actor, id int64) (*Booking, error) {
	return s.transition(ctx, actor, id, StatusInProgress, "")
}

func (s *Service) Complete(ctx context.Context, actor access.Actor, id int64) (*Booking, error) {
	return s.transition(ctx, actor, id, StatusCompleted, "")
}

// Cancel is available to either participant before work starts.
func (s *Service) Cancel(ctx context.Context, actor access.Actor, id int64, reason string) (*Booking, error) {
	return s.transition(ctx, actor, id, StatusCancelled, reason)
}

func (s *Service) transition(ctx context.Context, actor access.Actor, id int64, to Status, reason string) (*Booking, error) {
	b, err := s.loadParticipant(ctx, actor, access.ActionBookingTransition, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, to) {
		return nil, ErrInvalidStatusTransition
	}
	if !AllowedParty(b.Status, to, b.PartyOf(actor.UserID)) {
		return nil, ErrWrongParty
	}
	return s.apply(ctx, actor, b, to, reason)
}

func (s *Service) apply(ctx context.Context, actor access.Actor, b *Booking, to Status, reason string) (*Booking, error) {
	from := b.Status
	in := TransitionInput{
		BookingID: b.ID,
		From:      from,
		To:        to,
		ActorID:   actor.UserID,
		At:        s.now(),
		Reason:    strings.TrimSpace(reason),
	}
	if err := s.bookings.Transition(ctx, in); err != nil {
		return nil, apperr.FromRepo(err, ErrNotFound, "update booking status")
	}

	metrics.BookingTransitions.WithLabelValues(string(from), string(to)).Inc()
	events.Emit(ctx, s.publisher, events.SubjectBookingStatusChanged, statusChangedEvent{
		BookingID: b.ID, From: from, To: to, ActorID: actor.UserID,
	})

	updated, err := s.bookings.GetByID(ctx, b.ID)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrNotFound, "reload booking")
	}
	return updated, nil
}

type ContactResult struct {
	Link    *contact.Link `json:"link"`
	Booking *Booking      `json:"booking"`
}

// InitiateContact returns a WhatsApp link to the other participant and marks
// the chat as initiated. Repeat calls succeed with a fresh link.
func (s *Service) InitiateContact(ctx context.Context, actor access.Actor, id int64) (*ContactResult, error) {
	b, err := s.loadParticipant(ctx, actor, access.ActionBookingContact, id)
	if err != nil {
		return nil, err
	}

	requester, err := s.user(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	counterparty, err := s.user(ctx, b.Counterparty(actor.UserID))
	if err != nil {
		return nil, err
	}

	bookingID := b.ID
	link, err := s.contacts.Connect(ctx, contact.Request{
		Requester:    requester,
		Provider:     counterparty,
		Intent:       contact.IntentDirectService,
		BookingID:    &bookingID,
		BookingTitle: b.Title,
	})
	if err != nil {
		return nil, err
	}

	if !b.WhatsAppChatInitiated {
		if err := s.bookings.MarkChatInitiated(ctx, b.ID); err != nil {
			return nil, apperr.Dependency(err, "mark chat initiated")
		}
		b.WhatsAppChatInitiated = true
	}
	return &ContactResult{Link: link, Booking: b}, nil
}

// ListForUser returns the caller's bookings split by role, newest first.
func (s *Service) ListForUser(ctx context.Context, actor access.Actor, rawStatus string) (*UserBookings, error) {
	if !actor.Authenticated() {
		return nil, access.ErrUnauthenticated
	}
	var status Status
	if rawStatus != "" {
		st, err := ParseStatus(rawStatus)
		if err != nil {
			return nil, err
		}
		status = st
	}

	asClient, err := s.bookings.ListByClient(ctx, actor.UserID, status)
	if err != nil {
		return nil, apperr.Dependency(err, "list client bookings")
	}
	asProvider, err := s.bookings.ListByProvider(ctx, actor.UserID, status)
	if err != nil {
		return nil, apperr.Dependency(err, "list provider bookings")
	}
	return &UserBookings{AsClient: asClient, AsProvider: asProvider}, nil
}

func (s *Service) GetBooking(ctx context.Context, actor access.Actor, id int64) (*Booking, error) {
	return s.loadParticipant(ctx, actor, access.ActionBookingView, id)
}

// History returns the status events of a booking in the order they happened.
func (s *Service) History(ctx context.Context, actor access.Actor, id int64) ([]Event, error) {
	if _, err := s.loadParticipant(ctx, actor, access.ActionBookingView, id); err != nil {
		return nil, err
	}
	evs, err := s.bookings.History(ctx, id)
	if err != nil {
		return nil, apperr.Dependency(err, "load booking history")
	}
	return evs, nil
}

func (s *Service) loadParticipant(ctx context.Context, actor access.Actor, action access.Action, id int64) (*Booking, error) {
	if !actor.Authenticated() {
		return nil, access.ErrUnauthenticated
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrNotFound, "load booking")
	}
	if err := access.Authorize(actor, action, access.Between(b.ClientID, b.ProviderID)); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) user(ctx context.Context, id int64) (*auth.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromRepo(err, auth.ErrUserNotFound, "load user")
	}
	return u, nil
}
