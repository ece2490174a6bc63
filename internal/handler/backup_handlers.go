package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investigator-server/internal/models"
)

func (h *Handler) exportBackup(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	doc, err := h.backupService.Export(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) restoreBackup(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var doc models.BackupDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		badRequest(c, "invalid backup document")
		return
	}

	character, err := h.backupService.Restore(c.Request.Context(), id, &doc)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}
