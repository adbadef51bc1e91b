package admin

import (
	"context"
	"time"

	"talentnest/internal/domain/auth"
)

type StatsRepository interface {
	Snapshot(ctx context.Context, dayStart time.Time) (*Stats, error)
}

type UserLister interface {
	List(ctx context.Context, f auth.UserFilter) ([]auth.User, int64, error)
}
