package verification

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/verification", h.Submit)
	protected.GET("/verification/mine", h.GetMine)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	v := admin.Group("/verifications")
	{
		v.GET("", h.List)
		v.GET("/:id", h.Get)
		v.PATCH("/:id/checks", h.SetCheck)
		v.POST("/:id/approve", h.Approve)
		v.POST("/:id/approve-override", h.ApproveOverride)
		v.POST("/:id/reject", h.Reject)
	}
}
