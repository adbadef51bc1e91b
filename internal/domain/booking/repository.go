package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"talentnest/internal/domain/catalog"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Models lists the tables owned by this package, for migrations.
func Models() []any {
	return []any{&bookingModel{}, &Event{}}
}

type bookingModel struct {
	ID                    int64      `gorm:"column:id;primaryKey"`
	ServiceID             int64      `gorm:"column:service_id;index;not null"`
	ClientID              int64      `gorm:"column:client_id;index;not null"`
	ProviderID            int64      `gorm:"column:provider_id;index;not null"`
	Title                 string     `gorm:"column:title;size:255;not null"`
	Description           string     `gorm:"column:description;type:text"`
	Message               *string    `gorm:"column:message;type:text"`
	AgreedPrice           *float64   `gorm:"column:agreed_price;type:numeric(12,2)"`
	Status                string     `gorm:"column:status;size:20;index;not null"`
	WhatsAppChatInitiated bool       `gorm:"column:whatsapp_chat_initiated;not null;default:false"`
	CancellationReason    *string    `gorm:"column:cancellation_reason;type:text"`
	CancelledBy           *int64     `gorm:"column:cancelled_by"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at"`
	AcceptedAt            *time.Time `gorm:"column:accepted_at"`
	StartedAt             *time.Time `gorm:"column:started_at"`
	CompletedAt           *time.Time `gorm:"column:completed_at"`
	CancelledAt           *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *Booking {
	var msg, reason string
	if m.Message != nil {
		msg = *m.Message
	}
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &Booking{
		ID:                    m.ID,
		ServiceID:             m.ServiceID,
		ClientID:              m.ClientID,
		ProviderID:            m.ProviderID,
		Title:                 m.Title,
		Description:           m.Description,
		Message:               msg,
		AgreedPrice:           m.AgreedPrice,
		Status:                Status(m.Status),
		WhatsAppChatInitiated: m.WhatsAppChatInitiated,
		CancellationReason:    reason,
		CancelledBy:           m.CancelledBy,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		AcceptedAt:            m.AcceptedAt,
		StartedAt:             m.StartedAt,
		CompletedAt:           m.CompletedAt,
		CancelledAt:           m.CancelledAt,
	}
}

func toBookingModel(b *Booking) bookingModel {
	var msg *string
	if b.Message != "" {
		v := b.Message
		msg = &v
	}

	return bookingModel{
		ID:                    b.ID,
		ServiceID:             b.ServiceID,
		ClientID:              b.ClientID,
		ProviderID:            b.ProviderID,
		Title:                 b.Title,
		Description:           b.Description,
		Message:               msg,
		AgreedPrice:           b.AgreedPrice,
		Status:                string(b.Status),
		WhatsAppChatInitiated: b.WhatsAppChatInitiated,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

// Create inserts the booking, its creation event and bumps the listing's
// order count in one transaction.
func (r *bookingRepository) Create(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if err := tx.Create(&Event{
			BookingID: m.ID,
			ToStatus:  Status(m.Status),
			ActorID:   m.ClientID,
			CreatedAt: m.CreatedAt,
		}).Error; err != nil {
			return err
		}
		if err := catalog.IncrementOrders(tx, m.ServiceID); err != nil {
			return err
		}

		*b = *toDomainBooking(m)
		return nil
	})
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// Transition is a compare-and-set on status. When another writer moved the
// booking first no row matches and ErrInvalidStatusTransition is returned.
func (r *bookingRepository) Transition(ctx context.Context, in TransitionInput) error {
	cols := map[string]any{
		"status":     string(in.To),
		"updated_at": in.At,
	}
	switch in.To {
	case StatusAccepted:
		cols["accepted_at"] = in.At
	case StatusInProgress:
		cols["started_at"] = in.At
	case StatusCompleted:
		cols["completed_at"] = in.At
	case StatusCancelled:
		cols["cancelled_at"] = in.At
		cols["cancelled_by"] = in.ActorID
		if in.Reason != "" {
			cols["cancellation_reason"] = in.Reason
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status = ?", in.BookingID, string(in.From)).
			Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidStatusTransition
		}

		return tx.Create(&Event{
			BookingID:  in.BookingID,
			FromStatus: in.From,
			ToStatus:   in.To,
			ActorID:    in.ActorID,
			CreatedAt:  in.At,
		}).Error
	})
}

func (r *bookingRepository) MarkChatInitiated(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("whatsapp_chat_initiated", true).Error
}

func (r *bookingRepository) ListByClient(ctx context.Context, clientID int64, status Status) ([]Booking, error) {
	return r.list(ctx, "client_id = ?", clientID, status)
}

func (r *bookingRepository) ListByProvider(ctx context.Context, providerID int64, status Status) ([]Booking, error) {
	return r.list(ctx, "provider_id = ?", providerID, status)
}

func (r *bookingRepository) list(ctx context.Context, where string, userID int64, status Status) ([]Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).Where(where, userID)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var rows []bookingModel
	if err := q.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *bookingRepository) History(ctx context.Context, bookingID int64) ([]Event, error) {
	var out []Event
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("id ASC").Find(&out).Error
	return out, err
}
