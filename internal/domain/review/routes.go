package review

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.GET("/users/:id/reviews", h.ListForProvider)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/bookings/:id/review", h.Create)
	protected.POST("/reviews/:id/response", h.Respond)
}
