package booking

import "talentnest/internal/pkg/apperr"

var (
	ErrNotFound                = apperr.New(apperr.KindNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrServiceNotFound         = apperr.New(apperr.KindNotFound, "SERVICE_NOT_FOUND", "service not found or not available for booking")
	ErrInvalidStatusTransition = apperr.New(apperr.KindInvalidState, "INVALID_STATUS_TRANSITION", "booking cannot move to the requested status")
	ErrWrongParty              = apperr.New(apperr.KindAuthorization, "FORBIDDEN", "this party cannot perform that transition")
	ErrProviderMismatch        = apperr.New(apperr.KindValidation, "PROVIDER_MISMATCH", "provider_id does not match the service owner")
	ErrSelfBooking             = apperr.New(apperr.KindValidation, "SELF_BOOKING", "you cannot book your own service")
	ErrNegativePrice           = apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "agreed_price must be >= 0")
	ErrInvalidStatus           = apperr.New(apperr.KindValidation, "INVALID_STATUS", "unknown booking status")
)
