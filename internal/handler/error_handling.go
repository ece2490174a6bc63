package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"investigator-server/internal/models"
)

// handleServiceError maps service-layer sentinels onto HTTP statuses and the
// JSON error envelope. Anything unmapped is a 500 and gets logged here.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int

	switch {
	case errors.Is(err, models.ErrCharacterNotFound),
		errors.Is(err, models.ErrScenarioNotFound),
		errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrImageNotFound):
		statusCode = http.StatusNotFound

	case errors.Is(err, models.ErrNameRequired),
		errors.Is(err, models.ErrScenarioTitleRequired),
		errors.Is(err, models.ErrInvalidSymptomType),
		errors.Is(err, models.ErrUnrecognizedImport),
		errors.Is(err, models.ErrInvalidBackup),
		errors.Is(err, models.ErrImageQuotaExceeded),
		errors.Is(err, models.ErrImageTooLarge),
		errors.Is(err, models.ErrInvalidImageType):
		statusCode = http.StatusBadRequest

	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			models.ErrorResponse{Error: "an unexpected internal error occurred"})
		return
	}

	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: err.Error()})
}

// badRequest rejects malformed input before it reaches a service.
func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: message})
}
