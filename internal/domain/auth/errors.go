package auth

import "talentnest/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "INVALID_CREDENTIALS", "invalid email or password")
	ErrEmailAlreadyExists = apperr.New(apperr.KindValidation, "EMAIL_ALREADY_EXISTS", "email already exists")
	ErrAccountDisabled    = apperr.New(apperr.KindAuthorization, "ACCOUNT_DISABLED", "account is disabled")
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrOIDCEmailMissing   = apperr.New(apperr.KindUnauthenticated, "INVALID_TOKEN", "identity token carries no verified email")
)
