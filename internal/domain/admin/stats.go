package admin

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Stats is the platform overview shown on the admin dashboard.
type Stats struct {
	TotalUsers           int64            `json:"total_users"`
	UsersByRole          map[string]int64 `json:"users_by_role"`
	VerifiedArtisans     int64            `json:"verified_artisans"`
	ServicesByStatus     map[string]int64 `json:"services_by_status"`
	BookingsByStatus     map[string]int64 `json:"bookings_by_status"`
	PendingVerifications int64            `json:"pending_verifications"`
	ContactEvents        int64            `json:"contact_events"`
	BookingsToday        int64            `json:"bookings_today"`
	GeneratedAt          time.Time        `json:"generated_at"`
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

type bucketCount struct {
	Bucket string
	Total  int64
}

// Snapshot counts everything in one pass. Bookings "today" are those created
// in [dayStart, dayStart+24h).
func (r *statsRepository) Snapshot(ctx context.Context, dayStart time.Time) (*Stats, error) {
	db := r.db.WithContext(ctx)
	s := &Stats{}

	var err error
	if s.UsersByRole, err = groupCount(db, "users", "role"); err != nil {
		return nil, err
	}
	for _, n := range s.UsersByRole {
		s.TotalUsers += n
	}

	if err := db.Table("users").
		Where("role = ? AND is_verified = ?", "artisan", true).
		Count(&s.VerifiedArtisans).Error; err != nil {
		return nil, err
	}

	if s.ServicesByStatus, err = groupCount(db, "services", "status"); err != nil {
		return nil, err
	}
	if s.BookingsByStatus, err = groupCount(db, "bookings", "status"); err != nil {
		return nil, err
	}

	if err := db.Table("verification_requests").
		Where("status = ?", "pending").
		Count(&s.PendingVerifications).Error; err != nil {
		return nil, err
	}

	if err := db.Table("contact_events").Count(&s.ContactEvents).Error; err != nil {
		return nil, err
	}

	if err := db.Table("bookings").
		Where("created_at >= ? AND created_at < ?", dayStart, dayStart.Add(24*time.Hour)).
		Count(&s.BookingsToday).Error; err != nil {
		return nil, err
	}

	return s, nil
}

func groupCount(db *gorm.DB, table, column string) (map[string]int64, error) {
	var rows []bucketCount
	err := db.Table(table).
		Select(column + " AS bucket, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Bucket] = row.Total
	}
	return out, nil
}
