package handlers

import (
	"net/http"

	"perfume-shop-backend/internal/media"
	"perfume-shop-backend/internal/service"
	"perfume-shop-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload stores one media file and returns its URL. The kind form field
// selects the image or video limits; upload failures are surfaced with
// their underlying reason so the operator can retry.
// POST /api/admin/uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	kind := media.Kind(c.DefaultPostForm("kind", string(media.KindImage)))

	url, err := h.uploadService.Upload(c.Request.Context(), file, kind)
	if err != nil {
		logger.Error(err, "Upload failed", map[string]interface{}{
			"filename": file.Filename,
			"kind":     string(kind),
			"size":     file.Size,
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
