package verification

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

// Submit files an artisan's verification evidence.
// @Summary Submit verification request
// @Tags Verification
// @Accept json
// @Produce json
// @Param body body SubmitRequest true "evidence"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/verification [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if !response.BindJSON(c, &req) {
		return
	}
	r, err := h.service.Submit(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

func (h *Handler) GetMine(c *gin.Context) {
	r, err := h.service.GetForApplicant(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// List is the admin review queue.
// @Summary List verification requests
// @Tags Admin
// @Produce json
// @Param status query string false "all, pending, approved or rejected"
// @Param q query string false "search over name, business name and student id"
// @Param page query integer false "page number"
// @Param limit query integer false "page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/verifications [get]
func (h *Handler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), middleware.ActorFrom(c), c.Query("status"), c.Query("q"), pagination.FromQuery(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	r, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) SetCheck(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	var req SetCheckRequest
	if !response.BindJSON(c, &req) {
		return
	}
	r, err := h.service.SetSubCheck(c.Request.Context(), middleware.ActorFrom(c), id, req.Check, *req.Value)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Approve(c *gin.Context) {
	id, req, ok := bindReview(c)
	if !ok {
		return
	}
	r, err := h.service.Approve(c.Request.Context(), middleware.ActorFrom(c), id, req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) ApproveOverride(c *gin.Context) {
	id, req, ok := bindReview(c)
	if !ok {
		return
	}
	r, err := h.service.ApproveWithOverride(c.Request.Context(), middleware.ActorFrom(c), id, req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Reject(c *gin.Context) {
	id, req, ok := bindReview(c)
	if !ok {
		return
	}
	r, err := h.service.Reject(c.Request.Context(), middleware.ActorFrom(c), id, req.Reason, req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// bindReview tolerates an empty body; missing notes or reason are rejected
// by the service.
func bindReview(c *gin.Context) (int64, ReviewRequest, bool) {
	var req ReviewRequest
	id, ok := response.ParamID(c, "id")
	if !ok {
		return 0, req, false
	}
	if c.Request.ContentLength > 0 && !response.BindJSON(c, &req) {
		return 0, req, false
	}
	return id, req, true
}
