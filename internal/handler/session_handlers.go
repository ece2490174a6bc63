package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investigator-server/internal/service"
)

func (h *Handler) listSessions(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	sessions, err := h.sessionService.ListSessions(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *Handler) recordSession(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var report service.SessionReport
	if err := c.ShouldBindJSON(&report); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.sessionService.RecordSession(c.Request.Context(), id, report)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) deleteSession(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.sessionService.DeleteSession(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
