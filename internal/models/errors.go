package models

import "errors"

// Application-wide standard errors
var (
	// Resource errors
	ErrStoryNotFound = errors.New("story not found")

	// Submission errors
	ErrValidation      = errors.New("validation failed")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrUploadFailed    = errors.New("media upload failed")

	// Infrastructure errors
	ErrPersistence    = errors.New("persistence failure")
	ErrInternalServer = errors.New("internal server error")
)
