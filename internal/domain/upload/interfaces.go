package upload

import "context"

type FileRepositoryInterface interface {
	Create(ctx context.Context, u *Upload) error
	GetByID(ctx context.Context, id string) (*Upload, error)
	Delete(ctx context.Context, u *Upload) error
	ListByUserID(ctx context.Context, userID int64, purpose Purpose) ([]Upload, error)
}
