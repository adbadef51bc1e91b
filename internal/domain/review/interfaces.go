package review

import (
	"context"

	"talentnest/internal/domain/booking"
)

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*booking.Booking, error)
}
