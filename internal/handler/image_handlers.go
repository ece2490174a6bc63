package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investigator-server/internal/models"
	"investigator-server/internal/service"
)

func (h *Handler) listImages(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	images, err := h.imageService.ListImages(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *Handler) uploadImage(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "multipart field 'image' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	image, err := h.imageService.Upload(c.Request.Context(), id, service.ImageUpload{
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Contents:     file,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

type renameImageRequest struct {
	ImageName *string `json:"imageName"`
}

func (h *Handler) renameImage(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	imageID, ok := pathUUID(c, "imageId")
	if !ok {
		return
	}

	var req renameImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	image, err := h.imageService.Rename(c.Request.Context(), id, imageID, req.ImageName)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

func (h *Handler) deleteImage(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	imageID, ok := pathUUID(c, "imageId")
	if !ok {
		return
	}

	outcome, err := h.imageService.Delete(c.Request.Context(), id, imageID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted":     true,
		"blobDeleted": outcome == models.BlobDeleted,
	})
}
