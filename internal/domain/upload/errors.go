package upload

import "talentnest/internal/pkg/apperr"

var (
	ErrUploadNotFound  = apperr.New(apperr.KindNotFound, "UPLOAD_NOT_FOUND", "upload not found")
	ErrFileTooLarge    = apperr.New(apperr.KindValidation, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
	ErrInvalidMimeType = apperr.New(apperr.KindValidation, "INVALID_FILE_TYPE", "file type is not allowed")
	ErrEmptyFile       = apperr.New(apperr.KindValidation, "EMPTY_FILE", "file is empty")
	ErrNoFile          = apperr.New(apperr.KindValidation, "NO_FILE", "multipart field \"file\" is required")
	ErrInvalidPurpose  = apperr.New(apperr.KindValidation, "INVALID_PURPOSE", "purpose must be one of: evidence, portfolio, avatar")
)
