package handler

import (
	"errors"
	"fmt"
	"math/rand"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folklore-server/internal/models"
	"folklore-server/internal/service"
)

// submitStory handles POST /api/stories: parse the multipart form, enforce
// the transport limits, save temp files, run the submission pipeline and
// clean up every temp path regardless of outcome.
func (h *APIHandler) submitStory(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBodyBytes)

	form, err := c.MultipartForm()
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			handleServiceError(c, models.ErrPayloadTooLarge)
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Success: false,
			Message: "Invalid multipart form: " + err.Error(),
		})
		return
	}

	audioHeaders := form.File["audioFiles"]
	imageHeaders := form.File["imageFiles"]

	if len(audioHeaders) > maxAudioFiles || len(imageHeaders) > maxImageFiles {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Success: false,
			Message: fmt.Sprintf("Too many files. Maximum is %d audio and %d image files.", maxAudioFiles, maxImageFiles),
		})
		return
	}

	for _, fh := range audioHeaders {
		if !allowedAudioTypes[fh.Header.Get("Content-Type")] {
			handleServiceError(c, models.ErrInvalidFileType)
			return
		}
	}
	for _, fh := range imageHeaders {
		if !allowedImageTypes[fh.Header.Get("Content-Type")] {
			handleServiceError(c, models.ErrInvalidFileType)
			return
		}
	}

	// Every temp path written from here on is deleted when the request
	// finishes, success or failure.
	var tempPaths []string
	defer func() { h.janitor.Cleanup(tempPaths) }()

	audio, err := h.saveTempFiles(c, audioHeaders, "audioFiles", &tempPaths)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	images, err := h.saveTempFiles(c, imageHeaders, "imageFiles", &tempPaths)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	submission := service.SubmissionForm{
		Title:           c.PostForm("title"),
		Culture:         c.PostForm("culture"),
		Language:        c.PostForm("language"),
		Region:          c.PostForm("region"),
		Category:        c.PostForm("category"),
		AgeGroup:        c.PostForm("ageGroup"),
		Difficulty:      c.PostForm("difficulty"),
		Description:     c.PostForm("description"),
		StoryText:       c.PostForm("storyText"),
		Moral:           c.PostForm("moral"),
		Narrator:        c.PostForm("narrator"),
		SubmitterName:   c.PostForm("submitterName"),
		SubmitterEmail:  c.PostForm("submitterEmail"),
		CulturalContext: c.PostForm("culturalContext"),
		Permissions:     c.PostForm("permissions"),
		Attribution:     c.PostForm("attribution"),
		RespectfulUse:   c.PostForm("respectfulUse"),
		SubmissionType:  c.PostForm("submissionType"),
		Tags:            c.PostForm("tags"),
	}

	story, err := h.submissions.Submit(c.Request.Context(), submission, audio, images)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	storySubmissionsTotal.Inc()

	c.JSON(http.StatusCreated, submitStoryResponse{
		Success: true,
		Message: "Story submitted successfully",
		Story: storySummary{
			ID:             story.ID.Hex(),
			Title:          story.Title,
			SubmissionType: story.SubmissionType,
			AudioFiles:     len(story.AudioFiles),
			ImageFiles:     len(story.ImageFiles),
			SubmittedAt:    story.SubmittedAt,
		},
	})
}

// saveTempFiles writes the uploaded files of one field into the upload
// directory under generated names and records their paths for cleanup.
func (h *APIHandler) saveTempFiles(c *gin.Context, headers []*multipart.FileHeader, field string, tempPaths *[]string) ([]service.SavedFile, error) {
	files := make([]service.SavedFile, 0, len(headers))
	for _, fh := range headers {
		name := fmt.Sprintf("%s-%d-%d%s", field, time.Now().UnixMilli(), rand.Intn(1_000_000_000), filepath.Ext(fh.Filename))
		path := filepath.Join(h.uploadDir, name)

		if err := c.SaveUploadedFile(fh, path); err != nil {
			h.logger.Error("Failed to save uploaded file",
				zap.String("field", field),
				zap.String("originalName", fh.Filename),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: failed to store uploaded file %s", models.ErrInternalServer, fh.Filename)
		}
		*tempPaths = append(*tempPaths, path)

		files = append(files, service.SavedFile{
			Path:         path,
			Filename:     name,
			OriginalName: fh.Filename,
			Size:         fh.Size,
			ContentType:  fh.Header.Get("Content-Type"),
		})
	}
	return files, nil
}

// listStories handles GET /api/stories with offset pagination and optional
// equality filters. Status defaults to approved.
func (h *APIHandler) listStories(c *gin.Context) {
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	limit := parsePositiveInt(c.DefaultQuery("limit", "20"), 20)

	filter := models.StoryFilter{
		Status:         c.DefaultQuery("status", models.StatusApproved),
		Category:       c.Query("category"),
		Culture:        c.Query("culture"),
		SubmissionType: c.Query("submissionType"),
	}

	stories, total, err := h.stories.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	totalPages := (total + limit - 1) / limit

	c.JSON(http.StatusOK, listStoriesResponse{
		Success: true,
		Stories: stories,
		Pagination: paginationInfo{
			Current:      page,
			Total:        totalPages,
			Count:        len(stories),
			TotalStories: total,
		},
	})
}

// getStory handles GET /api/stories/:id.
func (h *APIHandler) getStory(c *gin.Context) {
	story, err := h.stories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, storyResponse{Success: true, Story: story})
}

// getStats handles GET /api/stories/stats.
func (h *APIHandler) getStats(c *gin.Context) {
	stats, err := h.stories.Stats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, statsResponse{Success: true, Stats: stats})
}

// parsePositiveInt parses a positive integer, falling back to the default on
// anything malformed or non-positive.
func parsePositiveInt(raw string, fallback int64) int64 {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
