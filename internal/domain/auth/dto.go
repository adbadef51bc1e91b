package auth

type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email,max=255"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	Role           string `json:"role" validate:"required,oneof=student artisan"`
	DisplayName    string `json:"display_name" validate:"required,min=2,max=255"`
	Phone          string `json:"phone" validate:"omitempty,max=32"`
	WhatsAppNumber string `json:"whatsapp_number" validate:"omitempty,max=32"`
	BusinessName   string `json:"business_name" validate:"omitempty,max=255"`
	Department     string `json:"department" validate:"omitempty,max=255"`
	StudentID      string `json:"student_id" validate:"omitempty,max=64"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	DisplayName    *string `json:"display_name" validate:"omitempty,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=32"`
	WhatsAppNumber *string `json:"whatsapp_number" validate:"omitempty,max=32"`
	BusinessName   *string `json:"business_name" validate:"omitempty,max=255"`
	Bio            *string `json:"bio" validate:"omitempty,max=4000"`
	Department     *string `json:"department" validate:"omitempty,max=255"`
	StudentID      *string `json:"student_id" validate:"omitempty,max=64"`
	AvatarURL      *string `json:"avatar_url" validate:"omitempty,url,max=512"`
}
