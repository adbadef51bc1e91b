package verification

import (
	"context"
	"time"

	"talentnest/internal/domain/auth"
)

type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id int64) (*Request, error)
	GetByApplicant(ctx context.Context, applicantID int64) (*Request, error)
	ExistsForApplicant(ctx context.Context, applicantID int64) (bool, error)
	SetCheck(ctx context.Context, r *Request) error
	Review(ctx context.Context, in ReviewInput) error
	List(ctx context.Context, f ListFilter) ([]Request, int64, error)
	Reconcile(ctx context.Context) (int64, error)
}

// ReviewInput closes a pending request. Approval flips the applicant's
// verified flag in the same transaction.
type ReviewInput struct {
	RequestID   int64
	ApplicantID int64
	Status      Status
	ReviewerID  int64
	Notes       string
	Reason      string
	Override    bool
	At          time.Time
}

type ListFilter struct {
	Status Status
	Query  string
	Limit  int
	Offset int
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
}
