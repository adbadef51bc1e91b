package verification

type SubmitRequest struct {
	FullName            string   `json:"full_name" validate:"required,min=2,max=255"`
	Email               string   `json:"email" validate:"omitempty,email"`
	StudentID           string   `json:"student_id" validate:"required,max=64"`
	Department          string   `json:"department" validate:"omitempty,max=255"`
	BusinessName        string   `json:"business_name" validate:"required,max=255"`
	BusinessDescription string   `json:"business_description" validate:"omitempty,max=5000"`
	Specializations     []string `json:"specializations" validate:"omitempty,max=20,dive,max=100"`
	YearsOfExperience   int      `json:"years_of_experience" validate:"gte=0,lte=80"`
	CertificateURLs     []string `json:"certificate_urls" validate:"omitempty,max=20,dive,url"`
	BioDocumentURL      string   `json:"bio_document_url" validate:"omitempty,url"`
	SupportingDocURLs   []string `json:"supporting_document_urls" validate:"omitempty,max=20,dive,url"`
}

type SetCheckRequest struct {
	Check string `json:"check" validate:"required"`
	Value *bool  `json:"value" validate:"required"`
}

type ReviewRequest struct {
	Notes  string `json:"notes" validate:"omitempty,max=4000"`
	Reason string `json:"reason" validate:"omitempty,max=4000"`
}
