package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// generateStory handles POST /api/generate, proxying the prompt to the
// external text-generation API.
func (h *APIHandler) generateStory(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	story, err := h.generator.GenerateStory(c.Request.Context(), req.Prompt, req.MaxLength)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, generateResponse{GeneratedStory: story})
}
