package admin

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.GetStats)
	admin.GET("/statistics", h.GetStats)
	admin.GET("/users", h.GetUsers)
}
