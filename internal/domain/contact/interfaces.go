package contact

import (
	"context"

	"talentnest/internal/domain/auth"
)

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
}

type EventRecorder interface {
	Create(ctx context.Context, e *ContactEvent) error
}
