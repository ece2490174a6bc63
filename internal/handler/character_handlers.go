package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"investigator-server/internal/service"
)

func (h *Handler) listCharacters(c *gin.Context) {
	summaries, err := h.characterService.ListCharacters(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *Handler) createCharacter(c *gin.Context) {
	var input service.CharacterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	character, err := h.characterService.CreateCharacter(c.Request.Context(), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *Handler) getCharacter(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	character, err := h.characterService.GetCharacter(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) updateCharacter(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input service.CharacterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	character, err := h.characterService.UpdateCharacter(c.Request.Context(), id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) deleteCharacter(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.characterService.DeleteCharacter(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type importRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) importIakyara(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: text is required")
		return
	}

	create := c.Query("create") == "true"
	outcome, err := h.characterService.ImportText(c.Request.Context(), req.Text, create)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if outcome.Character != nil {
		status = http.StatusCreated
	}
	c.JSON(status, outcome)
}
