package contact

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ContactEvent records that a requester opened a chat with a provider.
type ContactEvent struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RequesterID int64     `gorm:"index;not null" json:"requester_id"`
	ProviderID  int64     `gorm:"index;not null" json:"provider_id"`
	Intent      Intent    `gorm:"size:32;not null" json:"intent"`
	BookingID   *int64    `gorm:"index" json:"booking_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ContactEvent) TableName() string { return "contact_events" }

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *ContactEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) ListByRequester(ctx context.Context, requesterID int64) ([]ContactEvent, error) {
	var out []ContactEvent
	err := r.db.WithContext(ctx).Where("requester_id = ?", requesterID).Order("created_at DESC").Find(&out).Error
	return out, err
}
