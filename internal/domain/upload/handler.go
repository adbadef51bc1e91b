package upload

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentnest/internal/middleware"
	"talentnest/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload a file
// @Description Evidence documents and portfolio images. Returns the file ID and public URL.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param purpose formData string false "evidence, portfolio or avatar"
// @Success 201 {object} map[string]interface{}
// @Failure 400,401 {object} map[string]interface{}
// @Router /api/v1/uploads [post]
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFileSize+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		response.FromError(c, ErrNoFile)
		return
	}
	purpose, err := ParsePurpose(c.PostForm("purpose"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	u, err := h.service.Upload(c.Request.Context(), middleware.ActorFrom(c), purpose, fh)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) GetByID(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListMine(c *gin.Context) {
	var purpose Purpose
	if raw := c.Query("purpose"); raw != "" {
		p, err := ParsePurpose(raw)
		if err != nil {
			response.FromError(c, err)
			return
		}
		purpose = p
	}

	uploads, err := h.service.ListMine(c.Request.Context(), middleware.ActorFrom(c), purpose)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, uploads)
}
