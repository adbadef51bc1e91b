package auth

import (
	"strings"
	"time"

	"talentnest/internal/domain/access"
)

type User struct {
	ID             int64       `gorm:"primaryKey" json:"id"`
	Email          string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash   string      `gorm:"not null" json:"-"`
	Role           access.Role `gorm:"size:20;index;not null" json:"role"`
	DisplayName    string      `gorm:"size:255;not null" json:"display_name"`
	Phone          string      `gorm:"size:32" json:"phone,omitempty"`
	WhatsAppNumber string      `gorm:"column:whatsapp_number;size:32" json:"whatsapp_number,omitempty"`
	BusinessName   string      `gorm:"size:255" json:"business_name,omitempty"`
	Bio            string      `gorm:"type:text" json:"bio,omitempty"`
	Department     string      `gorm:"size:255" json:"department,omitempty"`
	StudentID      string      `gorm:"size:64" json:"student_id,omitempty"`
	AvatarURL      string      `gorm:"size:512" json:"avatar_url,omitempty"`
	IsVerified     bool        `gorm:"not null;default:false" json:"is_verified"`
	Rating         float64     `gorm:"not null;default:0" json:"rating"`
	ReviewCount    int         `gorm:"not null;default:0" json:"review_count"`
	IsActive       bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) Actor() access.Actor {
	return access.Actor{UserID: u.ID, Role: u.Role}
}

// ContactName is how the user is addressed in contact messages.
func (u *User) ContactName() string {
	if name := strings.TrimSpace(u.BusinessName); name != "" {
		return name
	}
	return strings.TrimSpace(u.DisplayName)
}

// ContactNumber prefers the WhatsApp number over the phone.
func (u *User) ContactNumber() string {
	if n := strings.TrimSpace(u.WhatsAppNumber); n != "" {
		return n
	}
	return strings.TrimSpace(u.Phone)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
