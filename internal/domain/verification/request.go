package verification

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Check names one of the four evidence sub-checks.
type Check string

const (
	CheckMatricNumber Check = "matric_number"
	CheckBusinessName Check = "business_name"
	CheckCertificates Check = "certificates"
	CheckBio          Check = "bio"
)

// ParseCheck accepts the bare name or its "_verified" column form.
func ParseCheck(s string) (Check, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "_verified")
	switch c := Check(s); c {
	case CheckMatricNumber, CheckBusinessName, CheckCertificates, CheckBio:
		return c, nil
	default:
		return "", ErrUnknownCheck
	}
}

func (c Check) column() string { return string(c) + "_verified" }

type Request struct {
	ID                   int64      `gorm:"primaryKey" json:"id"`
	ApplicantID          int64      `gorm:"uniqueIndex;not null" json:"applicant_id"`
	FullName             string     `gorm:"size:255;not null" json:"full_name"`
	Email                string     `gorm:"size:255;not null" json:"email"`
	StudentID            string     `gorm:"size:64;not null" json:"student_id"`
	Department           string     `gorm:"size:255" json:"department"`
	BusinessName         string     `gorm:"size:255;not null" json:"business_name"`
	BusinessDescription  string     `gorm:"type:text" json:"business_description"`
	Specializations      []string   `gorm:"type:text;serializer:json" json:"specializations"`
	YearsOfExperience    int        `gorm:"not null;default:0" json:"years_of_experience"`
	CertificateURLs      []string   `gorm:"type:text;serializer:json" json:"certificate_urls"`
	BioDocumentURL       string     `gorm:"size:512" json:"bio_document_url,omitempty"`
	SupportingDocURLs    []string   `gorm:"column:supporting_document_urls;type:text;serializer:json" json:"supporting_document_urls"`
	MatricNumberVerified bool       `gorm:"not null;default:false" json:"matric_number_verified"`
	BusinessNameVerified bool       `gorm:"not null;default:false" json:"business_name_verified"`
	CertificatesVerified bool       `gorm:"not null;default:false" json:"certificates_verified"`
	BioVerified          bool       `gorm:"not null;default:false" json:"bio_verified"`
	VerificationComplete bool       `gorm:"not null;default:false" json:"verification_complete"`
	Status               Status     `gorm:"size:20;index;not null" json:"status"`
	AdminNotes           string     `gorm:"type:text" json:"admin_notes,omitempty"`
	RejectionReason      string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	ApprovedWithOverride bool       `gorm:"not null;default:false" json:"approved_with_override"`
	ReviewerID           *int64     `json:"reviewer_id,omitempty"`
	SubmittedAt          time.Time  `gorm:"not null" json:"submitted_at"`
	ReviewedAt           *time.Time `json:"reviewed_at,omitempty"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (Request) TableName() string { return "verification_requests" }

// set applies one sub-check and recomputes completeness.
func (r *Request) set(c Check, v bool) {
	switch c {
	case CheckMatricNumber:
		r.MatricNumberVerified = v
	case CheckBusinessName:
		r.BusinessNameVerified = v
	case CheckCertificates:
		r.CertificatesVerified = v
	case CheckBio:
		r.BioVerified = v
	}
	r.VerificationComplete = r.allChecked()
}

func (r *Request) allChecked() bool {
	return r.MatricNumberVerified && r.BusinessNameVerified && r.CertificatesVerified && r.BioVerified
}
