package catalog

import "talentnest/internal/pkg/apperr"

var (
	ErrServiceNotFound         = apperr.New(apperr.KindNotFound, "SERVICE_NOT_FOUND", "service not found")
	ErrInvalidStatus           = apperr.New(apperr.KindValidation, "INVALID_STATUS", "status must be one of: pending, active, rejected, flagged")
	ErrOwnerNotVerified        = apperr.New(apperr.KindValidation, "OWNER_NOT_VERIFIED", "service owner must be verified before the listing can go active")
	ErrInvalidStatusTransition = apperr.New(apperr.KindInvalidState, "INVALID_STATUS_TRANSITION", "only approved services can be reactivated")
)
