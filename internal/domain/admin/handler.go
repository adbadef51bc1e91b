package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentnest/internal/middleware"
	"talentnest/internal/pkg/pagination"
	"talentnest/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetStats returns the platform overview.
// @Summary Platform statistics
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GetUsers lists accounts, optionally filtered by role and free text.
// @Summary List users
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param role query string false "student, artisan or admin"
// @Param q query string false "search over email, display name and business name"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	page, err := h.service.ListUsers(c.Request.Context(), middleware.ActorFrom(c), c.Query("role"), c.Query("q"), pagination.FromQuery(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}
