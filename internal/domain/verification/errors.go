package verification

import "talentnest/internal/pkg/apperr"

var (
	ErrNotFound                = apperr.New(apperr.KindNotFound, "VERIFICATION_NOT_FOUND", "verification request not found")
	ErrAlreadySubmitted        = apperr.New(apperr.KindInvalidState, "VERIFICATION_EXISTS", "a verification request was already submitted")
	ErrInvalidStatusTransition = apperr.New(apperr.KindInvalidState, "INVALID_STATUS_TRANSITION", "verification request is no longer pending")
	ErrUnknownCheck            = apperr.New(apperr.KindValidation, "UNKNOWN_CHECK", "check must be one of: matric_number, business_name, certificates, bio")
	ErrChecklistIncomplete     = apperr.New(apperr.KindValidation, "CHECKLIST_INCOMPLETE", "all four checks must pass before approval; use the override path otherwise")
	ErrReasonRequired          = apperr.New(apperr.KindValidation, "REASON_REQUIRED", "a rejection reason is required")
	ErrNotesRequired           = apperr.New(apperr.KindValidation, "NOTES_REQUIRED", "override approval requires admin notes")
	ErrInvalidStatusFilter     = apperr.New(apperr.KindValidation, "INVALID_STATUS", "status must be one of: all, pending, approved, rejected")
)
