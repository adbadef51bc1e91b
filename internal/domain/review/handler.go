package review

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

// Create godoc
// @Summary Review a completed booking
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param body body CreateRequest true "payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400,403,409 {object} map[string]interface{}
// @Router /api/v1/bookings/{id}/review [post]
func (h *Handler) Create(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req CreateRequest
	if !response.BindJSON(c, &req) {
		return
	}
	rv, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) Respond(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req RespondRequest
	if !response.BindJSON(c, &req) {
		return
	}
	rv, err := h.service.Respond(c.Request.Context(), middleware.ActorFrom(c), id, req.Response)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) ListForProvider(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	page, err := h.service.ListForProvider(c.Request.Context(), id, pagination.FromQuery(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}
