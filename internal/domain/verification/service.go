package verification

import (
	"context"
	"strings"
	"time"

	"talentnest/internal/domain/access"
	"talentnest/internal/events"
	"talentnest/internal/logger"
	"talentnest/internal/metrics"
	"talentnest/internal/pkg/apperr"
	"talentnest/internal/pkg/pagination"
)

type Service struct {
	requests  RequestRepository
	users     UserReader
	publisher events.Publisher
	now       func() time.Time
}

func NewService(requests RequestRepository, users UserReader, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		requests:  requests,
		users:     users,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type reviewedEvent struct {
	RequestID   int64  `json:"request_id"`
	ApplicantID int64  `json:"applicant_id"`
	Status      Status `json:"status"`
	ReviewerID  int64  `json:"reviewer_id"`
	Override    bool   `json:"override"`
}

// Submit files the calling artisan's evidence. Each applicant gets a single
// request; there is no resubmission.
func (s *Service) Submit(ctx context.Context, actor access.Actor, req SubmitRequest) (*Request, error) {
	if err := access.Authorize(actor, access.ActionVerificationSubmit, access.Resource{}); err != nil {
		return nil, err
	}

	exists, err := s.requests.ExistsForApplicant(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.Dependency(err, "check existing request")
	}
	if exists {
		return nil, ErrAlreadySubmitted
	}

	applicant, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.FromRepo(err, access.ErrUnauthenticated, "load applicant")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = applicant.Email
	}

	r := &Request{
		ApplicantID:         actor.UserID,
		FullName:            strings.TrimSpace(req.FullName),
		Email:               email,
		StudentID:           strings.TrimSpace(req.StudentID),
		Department:          strings.TrimSpace(req.Department),
		BusinessName:        strings.TrimSpace(req.BusinessName),
		BusinessDescription: strings.TrimSpace(req.BusinessDescription),
		Specializations:     nonNil(req.Specializations),
		YearsOfExperience:   req.YearsOfExperience,
		CertificateURLs:     nonNil(req.CertificateURLs),
		BioDocumentURL:      strings.TrimSpace(req.BioDocumentURL),
		SupportingDocURLs:   nonNil(req.SupportingDocURLs),
		Status:              StatusPending,
		SubmittedAt:         s.now(),
	}
	if r.FullName == "" || r.StudentID == "" || r.BusinessName == "" {
		return nil, apperr.Validation("full_name, student_id and business_name are required")
	}

	if err := s.requests.Create(ctx, r); err != nil {
		return nil, apperr.Dependency(err, "create verification request")
	}
	return r, nil
}

// GetForApplicant returns the caller's own request.
func (s *Service) GetForApplicant(ctx context.Context, actor access.Actor) (*Request, error) {
	if !actor.Authenticated() {
		return nil, access.ErrUnauthenticated
	}
	r, err := s.requests.GetByApplicant(ctx, actor.UserID)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrNotFound, "load verification request")
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, actor access.Actor, id int64) (*Request, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, access.ActionVerificationView, access.Owned(r.ApplicantID)); err != nil {
		return nil, err
	}
	return r, nil
}

// SetSubCheck records one checklist item and recomputes completeness.
func (s *Service) SetSubCheck(ctx context.Context, actor access.Actor, id int64, rawCheck string, value bool) (*Request, error) {
	r, err := s.loadForReview(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	check, err := ParseCheck(rawCheck)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusPending {
		return nil, ErrInvalidStatusTransition
	}

	r.set(check, value)
	if err := s.requests.SetCheck(ctx, r); err != nil {
		return nil, apperr.FromRepo(err, ErrNotFound, "update sub-check")
	}
	return r, nil
}

// Approve requires the full checklist. See ApproveWithOverride otherwise.
func (s *Service) Approve(ctx context.Context, actor access.Actor, id int64, notes string) (*Request, error) {
	r, err := s.loadForReview(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusPending {
		return nil, ErrInvalidStatusTransition
	}
	if !r.VerificationComplete {
		return nil, ErrChecklistIncomplete
	}
	return s.review(ctx, actor, r, StatusApproved, strings.TrimSpace(notes), "", false)
}

// ApproveWithOverride approves regardless of the checklist. Notes explain why.
func (s *Service) ApproveWithOverride(ctx context.Context, actor access.Actor, id int64, notes string) (*Request, error) {
	r, err := s.loadForReview(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusPending {
		return nil, ErrInvalidStatusTransition
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, ErrNotesRequired
	}
	return s.review(ctx, actor, r, StatusApproved, notes, "", true)
}

func (s *Service) Reject(ctx context.Context, actor access.Actor, id int64, reason, notes string) (*Request, error) {
	r, err := s.loadForReview(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusPending {
		return nil, ErrInvalidStatusTransition
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.review(ctx, actor, r, StatusRejected, strings.TrimSpace(notes), reason, false)
}

func (s *Service) review(ctx context.Context, actor access.Actor, r *Request, status Status, notes, reason string, override bool) (*Request, error) {
	at := s.now()
	err := s.requests.Review(ctx, ReviewInput{
		RequestID:   r.ID,
		ApplicantID: r.ApplicantID,
		Status:      status,
		ReviewerID:  actor.UserID,
		Notes:       notes,
		Reason:      reason,
		Override:    override,
		At:          at,
	})
	if err != nil {
		return nil, apperr.FromRepo(err, ErrNotFound, "review verification request")
	}

	outcome := string(status)
	if override {
		outcome = "approved_override"
	}
	metrics.VerificationReviews.WithLabelValues(outcome).Inc()
	events.Emit(ctx, s.publisher, events.SubjectVerificationReviewed, reviewedEvent{
		RequestID:   r.ID,
		ApplicantID: r.ApplicantID,
		Status:      status,
		ReviewerID:  actor.UserID,
		Override:    override,
	})

	return s.load(ctx, r.ID)
}

// List is the admin queue. status "all" or empty means no status filter.
func (s *Service) List(ctx context.Context, actor access.Actor, rawStatus, query string, p pagination.Params) (pagination.Page[Request], error) {
	if err := access.Authorize(actor, access.ActionVerificationReview, access.Resource{}); err != nil {
		return pagination.Page[Request]{}, err
	}

	var status Status
	switch st := Status(strings.ToLower(strings.TrimSpace(rawStatus))); st {
	case "", "all":
	case StatusPending, StatusApproved, StatusRejected:
		status = st
	default:
		return pagination.Page[Request]{}, ErrInvalidStatusFilter
	}

	p = p.Normalize()
	items, total, err := s.requests.List(ctx, ListFilter{Status: status, Query: query, Limit: p.Limit, Offset: p.Offset()})
	if err != nil {
		return pagination.Page[Request]{}, apperr.Dependency(err, "list verification requests")
	}
	return pagination.NewPage(items, total, p), nil
}

// Reconcile repairs drift between approved requests and artisan flags.
func (s *Service) Reconcile(ctx context.Context) (int64, error) {
	n, err := s.requests.Reconcile(ctx)
	if err != nil {
		return 0, apperr.Dependency(err, "reconcile verified flags")
	}
	if n > 0 {
		metrics.ReconcileCorrections.Add(float64(n))
		logger.WarnContext(ctx, "verified flags corrected", "count", n)
	}
	return n, nil
}

func (s *Service) loadForReview(ctx context.Context, actor access.Actor, id int64) (*Request, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, access.ActionVerificationReview, access.Resource{}); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) load(ctx context.Context, id int64) (*Request, error) {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromRepo(err, ErrNotFound, "load verification request")
	}
	return r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
