package review

import "talentnest/internal/pkg/apperr"

var (
	ErrNotFound            = apperr.New(apperr.KindNotFound, "REVIEW_NOT_FOUND", "review not found")
	ErrBookingNotFound     = apperr.New(apperr.KindNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrNotClient           = apperr.New(apperr.KindAuthorization, "FORBIDDEN", "only the booking's client can review it")
	ErrBookingNotCompleted = apperr.New(apperr.KindInvalidState, "BOOKING_NOT_COMPLETED", "only completed bookings can be reviewed")
	ErrAlreadyReviewed     = apperr.New(apperr.KindInvalidState, "REVIEW_EXISTS", "this booking was already reviewed")
	ErrAlreadyResponded    = apperr.New(apperr.KindInvalidState, "RESPONSE_EXISTS", "this review already has a response")
	ErrInvalidRating       = apperr.New(apperr.KindValidation, "INVALID_RATING", "rating must be between 1 and 5")
	ErrResponseRequired    = apperr.New(apperr.KindValidation, "RESPONSE_REQUIRED", "response text is required")
)
