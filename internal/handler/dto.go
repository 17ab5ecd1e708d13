package handler

import (
	"time"

	"folklore-server/internal/models"
)

type storySummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	SubmissionType string    `json:"submissionType"`
	AudioFiles     int       `json:"audioFiles"`
	ImageFiles     int       `json:"imageFiles"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

type submitStoryResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Story   storySummary `json:"story"`
}

type paginationInfo struct {
	Current      int64 `json:"current"`
	Total        int64 `json:"total"`
	Count        int   `json:"count"`
	TotalStories int64 `json:"totalStories"`
}

type listStoriesResponse struct {
	Success    bool           `json:"success"`
	Stories    []models.Story `json:"stories"`
	Pagination paginationInfo `json:"pagination"`
}

type storyResponse struct {
	Success bool          `json:"success"`
	Story   *models.Story `json:"story"`
}

type statsResponse struct {
	Success bool               `json:"success"`
	Stats   *models.StoryStats `json:"stats"`
}

type contactResponse struct {
	Success bool            `json:"success"`
	Contact *models.Contact `json:"contact"`
}

// errorResponse is the failure envelope shared by all endpoints.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type generateRequest struct {
	Prompt    string `json:"prompt" binding:"required"`
	MaxLength int    `json:"max_length"`
}

type generateResponse struct {
	GeneratedStory string `json:"generated_story"`
}
