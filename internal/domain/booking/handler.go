package booking

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"talentnest/internal/domain/access"
	"talentnest/internal/middleware"
	"talentnest/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking books a service.
// @Summary Create booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param body body CreateBookingRequest true "payload"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "service not discoverable"
// @Router /api/v1/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !response.BindJSON(c, &req) {
		return
	}
	b, err := h.service.CreateBooking(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	out, err := h.service.ListForUser(c.Request.Context(), middleware.ActorFrom(c), c.Query("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.GetBooking(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) GetHistory(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	evs, err := h.service.History(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, evs)
}

func (h *Handler) Accept(c *gin.Context)   { h.move(c, h.service.Accept) }
func (h *Handler) Start(c *gin.Context)    { h.move(c, h.service.Start) }
func (h *Handler) Complete(c *gin.Context) { h.move(c, h.service.Complete) }

func (h *Handler) Decline(c *gin.Context) { h.moveWithReason(c, h.service.Decline) }
func (h *Handler) Cancel(c *gin.Context)  { h.moveWithReason(c, h.service.Cancel) }

func (h *Handler) move(c *gin.Context, op func(context.Context, access.Actor, int64) (*Booking, error)) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	b, err := op(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) moveWithReason(c *gin.Context, op func(context.Context, access.Actor, int64, string) (*Booking, error)) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	// the body is optional
	var req ReasonRequest
	if c.Request.ContentLength > 0 && !response.BindJSON(c, &req) {
		return
	}
	b, err := op(c.Request.Context(), middleware.ActorFrom(c), id, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// InitiateContact returns a WhatsApp link to the other participant.
// @Summary Contact counterparty
// @Tags Bookings
// @Produce json
// @Param id path integer true "booking id"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/bookings/{id}/contact [post]
func (h *Handler) InitiateContact(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.InitiateContact(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
