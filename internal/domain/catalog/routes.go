package catalog

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.GET("/services", h.ListServices)
	public.GET("/services/:id", h.GetService)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	services := protected.Group("/services")
	{
		services.POST("", h.CreateService)
		services.GET("/mine", h.ListMine)
		services.PUT("/:id", h.UpdateService)
		services.POST("/:id/deactivate", h.Deactivate)
		services.POST("/:id/reactivate", h.Reactivate)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.PATCH("/services/:id/status", h.SetStatus)
}
