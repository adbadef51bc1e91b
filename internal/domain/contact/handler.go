package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentnest/internal/middleware"
	"talentnest/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateLink returns a WhatsApp deep link to the given provider.
// @Summary Create contact link
// @Tags Contact
// @Accept json
// @Produce json
// @Param body body LinkRequest true "payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/contact/link [post]
func (h *Handler) CreateLink(c *gin.Context) {
	var req LinkRequest
	if !response.BindJSON(c, &req) {
		return
	}
	link, err := h.service.CreateLink(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, link)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/contact/link", h.CreateLink)
}
