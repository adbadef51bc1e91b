package catalog

import (
	"strings"
	"time"

	"talentnest/internal/pkg/apperr"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusRejected Status = "rejected"
	StatusFlagged  Status = "flagged"
)

const MaxTags = 10

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusActive, StatusRejected, StatusFlagged:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Listing is a service offered by an artisan. Stored in the "services" table.
type Listing struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"index;not null" json:"user_id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Category      string    `gorm:"size:100;index;not null" json:"category"`
	Subcategory   string    `gorm:"size:100" json:"subcategory,omitempty"`
	PriceRange    string    `gorm:"size:100" json:"price_range,omitempty"`
	DeliveryTime  string    `gorm:"size:100" json:"delivery_time,omitempty"`
	Tags          []string  `gorm:"type:text;serializer:json" json:"tags"`
	PortfolioURLs []string  `gorm:"type:text;serializer:json" json:"portfolio_urls"`
	Status        Status    `gorm:"size:20;index;not null;default:pending" json:"status"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	ViewCount     int64     `gorm:"not null;default:0" json:"view_count"`
	OrderCount    int64     `gorm:"not null;default:0" json:"order_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Listing) TableName() string { return "services" }

// Discoverable reports whether the listing shows up in public browsing.
func (l *Listing) Discoverable() bool {
	return l.IsActive && l.Status == StatusActive
}

// NormalizeTags trims, drops empties and removes case-insensitive
// duplicates keeping the first spelling. More than MaxTags is a
// validation error.
func NormalizeTags(tags []string) ([]string, error) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	if len(out) > MaxTags {
		return nil, apperr.Validation("a service can have at most 10 tags")
	}
	return out, nil
}
