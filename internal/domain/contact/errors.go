package contact

import "talentnest/internal/pkg/apperr"

var (
	ErrInvalidContactNumber = apperr.New(apperr.KindValidation, "INVALID_CONTACT_NUMBER", "contact number must be '+' followed by 10 to 15 digits")
	ErrInvalidIntent        = apperr.New(apperr.KindValidation, "INVALID_INTENT", "intent must be one of: skill_learning, direct_service")
	ErrSkillRequired        = apperr.New(apperr.KindValidation, "SKILL_REQUIRED", "skill_learning requires a skill title")
	ErrSelfContact          = apperr.New(apperr.KindValidation, "SELF_CONTACT", "you cannot contact yourself")
	ErrUserNotFound         = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
)
