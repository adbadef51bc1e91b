package upload

import (
	"strings"
	"time"
)

// Purpose tags what an uploaded file is for.
type Purpose string

const (
	PurposeEvidence  Purpose = "evidence"
	PurposePortfolio Purpose = "portfolio"
	PurposeAvatar    Purpose = "avatar"
)

// ParsePurpose defaults to evidence when empty.
func ParsePurpose(s string) (Purpose, error) {
	switch p := Purpose(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PurposeEvidence, nil
	case PurposeEvidence, PurposePortfolio, PurposeAvatar:
		return p, nil
	default:
		return "", ErrInvalidPurpose
	}
}

// Upload is a file stored on local disk. Other records reference it by URL.
type Upload struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       int64     `gorm:"index;not null" json:"user_id"`
	Purpose      Purpose   `gorm:"size:20;not null" json:"purpose"`
	OriginalName string    `gorm:"size:255" json:"name"`
	FilePath     string    `gorm:"size:512;not null" json:"-"`
	FileURL      string    `gorm:"size:512;not null" json:"url"`
	MimeType     string    `gorm:"size:100;not null" json:"mime_type"`
	Size         int64     `gorm:"not null" json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Upload) TableName() string { return "uploads" }
