package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folklore-server/internal/models"
	"folklore-server/internal/service"
)

// Messages kept stable for API consumers.
const (
	msgFileTooLarge    = "File too large. Maximum size is 50MB."
	msgInvalidFileType = "Invalid file type. Only images and audio files are allowed."
	msgStoryNotFound   = "Story not found"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var resp errorResponse

	switch {
	case errors.Is(err, models.ErrValidation):
		statusCode = http.StatusBadRequest
		resp = errorResponse{Success: false, Message: err.Error()}
	case errors.Is(err, models.ErrPayloadTooLarge):
		statusCode = http.StatusBadRequest
		resp = errorResponse{Success: false, Message: msgFileTooLarge}
	case errors.Is(err, models.ErrInvalidFileType):
		statusCode = http.StatusBadRequest
		resp = errorResponse{Success: false, Message: msgInvalidFileType}
	case errors.Is(err, models.ErrStoryNotFound):
		statusCode = http.StatusNotFound
		resp = errorResponse{Success: false, Message: msgStoryNotFound}
	case errors.Is(err, models.ErrUploadFailed):
		statusCode = http.StatusInternalServerError
		resp = errorResponse{Success: false, Message: "Error saving story", Error: err.Error()}
	case errors.Is(err, models.ErrPersistence):
		statusCode = http.StatusInternalServerError
		resp = errorResponse{Success: false, Message: "Error saving story", Error: err.Error()}
	case errors.Is(err, service.ErrAIGenerationFailed):
		statusCode = http.StatusBadGateway
		resp = errorResponse{Success: false, Message: "Error generating story", Error: err.Error()}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		resp = errorResponse{Success: false, Message: "Something went wrong!"}
	}

	c.AbortWithStatusJSON(statusCode, resp)
}
