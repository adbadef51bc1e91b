package contact

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"talentnest/internal/domain/access"
	"talentnest/internal/domain/auth"
	"talentnest/internal/events"
	"talentnest/internal/logger"
	"talentnest/internal/metrics"
	"talentnest/internal/pkg/apperr"
)

type Service struct {
	users     UserReader
	recorder  EventRecorder
	publisher events.Publisher
	builder   *LinkBuilder
}

func NewService(users UserReader, recorder EventRecorder, publisher events.Publisher, builder *LinkBuilder) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if builder == nil {
		builder = NewLinkBuilder(DefaultHost)
	}
	return &Service{users: users, recorder: recorder, publisher: publisher, builder: builder}
}

// Request describes one contact initiation between two loaded users.
type Request struct {
	Requester    *auth.User
	Provider     *auth.User
	Intent       Intent
	SkillTitle   string
	BookingID    *int64
	BookingTitle string
}

type initiatedEvent struct {
	EventID     string `json:"event_id"`
	RequesterID int64  `json:"requester_id"`
	ProviderID  int64  `json:"provider_id"`
	Intent      Intent `json:"intent"`
	BookingID   *int64 `json:"booking_id,omitempty"`
}

// Connect builds the link and records the contact. Recording failures are
// logged and never fail the call.
func (s *Service) Connect(ctx context.Context, req Request) (*Link, error) {
	if req.Requester == nil || req.Provider == nil {
		return nil, ErrUserNotFound
	}
	if req.Requester.ID == req.Provider.ID {
		return nil, ErrSelfContact
	}

	link, err := s.builder.Build(
		Party{Name: req.Provider.ContactName(), Number: req.Provider.ContactNumber()},
		Party{Name: req.Requester.DisplayName},
		req.Intent,
		Context{SkillTitle: req.SkillTitle, BookingTitle: req.BookingTitle},
	)
	if err != nil {
		return nil, err
	}
	metrics.ContactLinks.WithLabelValues(string(req.Intent)).Inc()

	ev := &ContactEvent{
		ID:          uuid.NewString(),
		RequesterID: req.Requester.ID,
		ProviderID:  req.Provider.ID,
		Intent:      req.Intent,
		BookingID:   req.BookingID,
	}
	if s.recorder != nil {
		if err := s.recorder.Create(ctx, ev); err != nil {
			logger.WarnContext(ctx, "contact event not recorded", "requester_id", ev.RequesterID, "provider_id", ev.ProviderID, "error", err)
		}
	}
	events.Emit(ctx, s.publisher, events.SubjectContactInitiated, initiatedEvent{
		EventID:     ev.ID,
		RequesterID: ev.RequesterID,
		ProviderID:  ev.ProviderID,
		Intent:      ev.Intent,
		BookingID:   ev.BookingID,
	})

	return link, nil
}

// CreateLink is the standalone entry point used from profile pages.
func (s *Service) CreateLink(ctx context.Context, actor access.Actor, req LinkRequest) (*Link, error) {
	if err := access.Authorize(actor, access.ActionContactLink, access.Resource{}); err != nil {
		return nil, err
	}
	intent, err := ParseIntent(req.Intent)
	if err != nil {
		return nil, err
	}
	if intent == IntentSkillLearning && strings.TrimSpace(req.SkillTitle) == "" {
		return nil, ErrSkillRequired
	}

	requester, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrUserNotFound, "load requester")
	}
	provider, err := s.users.GetByID(ctx, req.ProviderID)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrUserNotFound, "load provider")
	}
	if !provider.IsActive {
		return nil, ErrUserNotFound
	}

	return s.Connect(ctx, Request{
		Requester:  requester,
		Provider:   provider,
		Intent:     intent,
		SkillTitle: req.SkillTitle,
	})
}
