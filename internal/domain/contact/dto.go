package contact

type LinkRequest struct {
	ProviderID int64  `json:"provider_id" validate:"required,gt=0"`
	Intent     string `json:"intent" validate:"required"`
	SkillTitle string `json:"skill_title" validate:"omitempty,max=255"`
}
