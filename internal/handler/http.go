package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folklore-server/internal/repository"
	"folklore-server/internal/service"
	"folklore-server/internal/storage"
)

// Transport-layer limits on story submissions. Violations fail the whole
// request before any upload attempt.
const (
	maxRequestBodyBytes = 50 << 20 // 50MB
	maxAudioFiles       = 5
	maxImageFiles       = 10
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedAudioTypes = map[string]bool{
	"audio/mpeg": true,
	"audio/mp3":  true,
	"audio/wav":  true,
	"audio/mp4":  true,
	"audio/m4a":  true,
}

// APIHandler binds the submission pipeline, the story catalog, the contact
// form and the AI proxy into the HTTP surface.
type APIHandler struct {
	submissions *service.SubmissionService
	stories     *service.StoryService
	generator   *service.GeneratorService
	contacts    repository.ContactRepository
	janitor     *storage.Janitor
	uploadDir   string
	logger      *zap.Logger
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(
	submissions *service.SubmissionService,
	stories *service.StoryService,
	generator *service.GeneratorService,
	contacts repository.ContactRepository,
	janitor *storage.Janitor,
	uploadDir string,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		submissions: submissions,
		stories:     stories,
		generator:   generator,
		contacts:    contacts,
		janitor:     janitor,
		uploadDir:   uploadDir,
		logger:      logger.Named("APIHandler"),
	}
}

// RegisterRoutes attaches all application routes to the router. The static
// stats route is registered before the :id route.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/stories", h.submitStory)
		api.GET("/stories", h.listStories)
		api.GET("/stories/stats", h.getStats)
		api.GET("/stories/:id", h.getStory)
		api.POST("/contact", h.submitContact)
		api.POST("/generate", h.generateStory)
	}
}

// RegisterHealth attaches the health endpoint.
func RegisterHealth(router *gin.Engine) {
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)
}
