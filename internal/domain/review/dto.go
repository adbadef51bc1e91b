package review

type CreateRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type RespondRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}
