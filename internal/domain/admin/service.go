package admin

import (
	"context"
	"time"

	"talentnest/internal/domain/access"
	"talentnest/internal/domain/auth"
	"talentnest/internal/domain/booking"
	"talentnest/internal/domain/catalog"
	"talentnest/internal/pkg/apperr"
	"talentnest/internal/pkg/pagination"
)

type Service struct {
	stats StatsRepository
	users UserLister
	now   func() time.Time
}

func NewService(stats StatsRepository, users UserLister) *Service {
	return &Service{
		stats: stats,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// -------------------- Statistics --------------------

func (s *Service) Stats(ctx context.Context, actor access.Actor) (*Stats, error) {
	if err := access.Authorize(actor, access.ActionAdminConsole, access.Resource{}); err != nil {
		return nil, err
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	st, err := s.stats.Snapshot(ctx, dayStart)
	if err != nil {
		return nil, apperr.Dependency(err, "collect statistics")
	}

	// known buckets are always present, zero when empty
	fill(st.UsersByRole, string(access.RoleStudent), string(access.RoleArtisan), string(access.RoleAdmin))
	fill(st.ServicesByStatus,
		string(catalog.StatusPending), string(catalog.StatusActive),
		string(catalog.StatusRejected), string(catalog.StatusFlagged))
	fill(st.BookingsByStatus,
		string(booking.StatusPending), string(booking.StatusAccepted), string(booking.StatusInProgress),
		string(booking.StatusCompleted), string(booking.StatusCancelled))
	st.GeneratedAt = now
	return st, nil
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, actor access.Actor, rawRole, query string, p pagination.Params) (pagination.Page[auth.User], error) {
	if err := access.Authorize(actor, access.ActionAdminConsole, access.Resource{}); err != nil {
		return pagination.Page[auth.User]{}, err
	}

	var role access.Role
	if rawRole != "" && rawRole != "all" {
		r, err := access.ParseRole(rawRole)
		if err != nil {
			return pagination.Page[auth.User]{}, err
		}
		role = r
	}

	p = p.Normalize()
	users, total, err := s.users.List(ctx, auth.UserFilter{Role: role, Query: query, Limit: p.Limit, Offset: p.Offset()})
	if err != nil {
		return pagination.Page[auth.User]{}, apperr.Dependency(err, "list users")
	}
	return pagination.NewPage(users, total, p), nil
}

func fill(m map[string]int64, keys ...string) {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			m[k] = 0
		}
	}
}
