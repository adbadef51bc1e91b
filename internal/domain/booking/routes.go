package booking

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	bookings := protected.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/history", h.GetHistory)
		bookings.POST("/:id/accept", h.Accept)
		bookings.POST("/:id/decline", h.Decline)
		bookings.POST("/:id/start", h.Start)
		bookings.POST("/:id/complete", h.Complete)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.POST("/:id/contact", h.InitiateContact)
	}
}
