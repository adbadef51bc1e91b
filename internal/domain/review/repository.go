package review

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"talentnest/internal/domain/auth"
)

type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id int64) (*Review, error)
	ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]Review, int64, error)
	SetResponse(ctx context.Context, id int64, text string, at time.Time) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &reviewRepository{db: db}
}

// Models returns the persisted review entity for migration.
func Models() []any {
	return []any{&reviewModel{}}
}

type reviewModel struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	BookingID        int64      `gorm:"column:booking_id;uniqueIndex;not null"`
	ServiceID        int64      `gorm:"column:service_id;index;not null"`
	ClientID         int64      `gorm:"column:client_id;index;not null"`
	ProviderID       int64      `gorm:"column:provider_id;index;not null"`
	Rating           int        `gorm:"column:rating;not null"`
	Comment          *string    `gorm:"column:comment;type:text"`
	ProviderResponse *string    `gorm:"column:provider_response;type:text"`
	RespondedAt      *time.Time `gorm:"column:responded_at"`
	IsHidden         bool       `gorm:"column:is_hidden;not null;default:false"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) Review {
	comment := ""
	if m.Comment != nil {
		comment = *m.Comment
	}
	return Review{
		ID:               m.ID,
		BookingID:        m.BookingID,
		ServiceID:        m.ServiceID,
		ClientID:         m.ClientID,
		ProviderID:       m.ProviderID,
		Rating:           m.Rating,
		Comment:          comment,
		ProviderResponse: m.ProviderResponse,
		RespondedAt:      m.RespondedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toReviewModel(r *Review) reviewModel {
	var comment *string
	if r.Comment != "" {
		v := r.Comment
		comment = &v
	}
	return reviewModel{
		ID:               r.ID,
		BookingID:        r.BookingID,
		ServiceID:        r.ServiceID,
		ClientID:         r.ClientID,
		ProviderID:       r.ProviderID,
		Rating:           r.Rating,
		Comment:          comment,
		ProviderResponse: r.ProviderResponse,
		RespondedAt:      r.RespondedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// Create inserts the review and recomputes the provider's rating and
// review_count in the same transaction. A second review for the booking
// returns ErrAlreadyReviewed.
func (r *reviewRepository) Create(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toReviewModel(rv)
		if err := tx.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyReviewed
			}
			return err
		}

		var agg struct {
			Average float64
			Total   int64
		}
		err := tx.Model(&reviewModel{}).
			Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
			Where("provider_id = ? AND is_hidden = ?", m.ProviderID, false).
			Scan(&agg).Error
		if err != nil {
			return err
		}

		res := tx.Model(&auth.User{}).Where("id = ?", m.ProviderID).Updates(map[string]any{
			"rating":       math.Round(agg.Average*100) / 100,
			"review_count": agg.Total,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		*rv = toDomainReview(m)
		return nil
	})
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*Review, error) {
	var m reviewModel
	if err := r.db.WithContext(ctx).Where("is_hidden = ?", false).First(&m, id).Error; err != nil {
		return nil, err
	}
	d := toDomainReview(m)
	return &d, nil
}

func (r *reviewRepository) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("provider_id = ? AND is_hidden = ?", providerID, false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []reviewModel
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReview(m))
	}
	return out, total, nil
}

// SetResponse only writes when no response exists yet.
func (r *reviewRepository) SetResponse(ctx context.Context, id int64, text string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("id = ? AND provider_response IS NULL", id).
		Updates(map[string]any{
			"provider_response": text,
			"responded_at":      at,
			"updated_at":        at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyResponded
	}
	return nil
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
