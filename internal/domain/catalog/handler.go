package catalog

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"talentnest/internal/domain/access"
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

// ListServices browses discoverable listings.
// @Summary List services
// @Description Discoverable listings, newest first. Free-text search over title, description and tags.
// @Tags Catalog
// @Produce json
// @Param q query string false "search text"
// @Param category query string false "category"
// @Param page query integer false "page number" example(1)
// @Param limit query integer false "page size (max 100)" example(20)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/services [get]
func (h *Handler) ListServices(c *gin.Context) {
	page, err := h.service.ListActive(c.Request.Context(), c.Query("q"), c.Query("category"), pagination.FromQuery(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) GetService(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	l, err := h.service.GetService(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !response.BindJSON(c, &req) {
		return
	}
	l, err := h.service.CreateService(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, l)
}

func (h *Handler) ListMine(c *gin.Context) {
	items, err := h.service.ListByOwner(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateServiceRequest
	if !response.BindJSON(c, &req) {
		return
	}
	l, err := h.service.UpdateService(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) Deactivate(c *gin.Context) {
	h.toggle(c, h.service.DeactivateService)
}

func (h *Handler) Reactivate(c *gin.Context) {
	h.toggle(c, h.service.ReactivateService)
}

func (h *Handler) toggle(c *gin.Context, op func(ctx context.Context, actor access.Actor, id int64) (*Listing, error)) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	l, err := op(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

// SetStatus is the admin moderation endpoint.
// @Summary Set service status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path integer true "service id"
// @Param body body SetStatusRequest true "payload"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/services/{id}/status [patch]
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req SetStatusRequest
	if !response.BindJSON(c, &req) {
		return
	}
	l, err := h.service.SetServiceStatus(c.Request.Context(), middleware.ActorFrom(c), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}
