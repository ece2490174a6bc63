// Package handler is the HTTP boundary: route registration, request
// decoding and the error-to-status mapping.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"investigator-server/internal/service"
)

// Handler bundles the application services behind the gin routes.
type Handler struct {
	characterService service.CharacterService
	sessionService   service.SessionService
	backupService    service.BackupService
	imageService     service.ImageService
	logger           *zap.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(
	characterService service.CharacterService,
	sessionService service.SessionService,
	backupService service.BackupService,
	imageService service.ImageService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		characterService: characterService,
		sessionService:   sessionService,
		backupService:    backupService,
		imageService:     imageService,
		logger:           logger.Named("Handler"),
	}
}

// RegisterRoutes attaches every route to the engine.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.health)
	router.HEAD("/health", h.health)

	api := router.Group("/api")
	{
		characters := api.Group("/characters")
		{
			characters.GET("", h.listCharacters)
			characters.POST("", h.createCharacter)
			characters.GET("/:id", h.getCharacter)
			characters.PUT("/:id", h.updateCharacter)
			characters.DELETE("/:id", h.deleteCharacter)

			characters.GET("/:id/images", h.listImages)
			characters.POST("/:id/images", h.uploadImage)
			characters.PUT("/:id/images/:imageId", h.renameImage)
			characters.DELETE("/:id/images/:imageId", h.deleteImage)

			characters.GET("/:id/sessions", h.listSessions)
			characters.POST("/:id/sessions", h.recordSession)

			characters.GET("/:id/backup", h.exportBackup)
			characters.POST("/:id/backup", h.restoreBackup)
		}

		api.DELETE("/sessions/:id", h.deleteSession)
		api.POST("/import/iakyara", h.importIakyara)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pathUUID parses a UUID path parameter, rejecting the request on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}
