package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"folklore-server/internal/config"
	"folklore-server/internal/models"
	"folklore-server/internal/repository"
	"folklore-server/internal/storage"
)

// File groups of a submission and their destination folders at the media
// host. Audio goes through the host's video pipeline.
const (
	groupAudio  = "audioFiles"
	groupImages = "imageFiles"

	folderAudio  = "folklore/audio"
	folderImages = "folklore/images"
)

// SavedFile describes one uploaded file already written to a temp path by
// the HTTP layer.
type SavedFile struct {
	Path         string
	Filename     string // server-generated local name
	OriginalName string // client-supplied name
	Size         int64
	ContentType  string
}

// SubmissionForm carries the raw multipart string fields of a story
// submission. Parsing and validation happen in the service.
type SubmissionForm struct {
	Title           string
	Culture         string
	Language        string
	Region          string
	Category        string
	AgeGroup        string
	Difficulty      string
	Description     string
	StoryText       string
	Moral           string
	Narrator        string
	SubmitterName   string
	SubmitterEmail  string
	CulturalContext string
	Permissions     string
	Attribution     string
	RespectfulUse   string
	SubmissionType  string
	Tags            string
}

// SubmissionService runs the story submission pipeline: validate and
// normalize the form, upload each file to the media host, persist the
// assembled story. Temp-file cleanup stays with the HTTP layer so it runs on
// every path, including failures before this service is reached.
type SubmissionService struct {
	stories    repository.StoryRepository
	statsCache repository.StatsCache
	media      storage.MediaStore
	prober     storage.Prober
	policy     string
	logger     *zap.Logger
}

// NewSubmissionService creates a SubmissionService.
func NewSubmissionService(
	stories repository.StoryRepository,
	statsCache repository.StatsCache,
	media storage.MediaStore,
	prober storage.Prober,
	policy string,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		stories:    stories,
		statsCache: statsCache,
		media:      media,
		prober:     prober,
		policy:     policy,
		logger:     logger.Named("SubmissionService"),
	}
}

// requiredFields maps the mandatory form fields to their values.
func requiredFields(form SubmissionForm) map[string]string {
	return map[string]string{
		"title":          form.Title,
		"culture":        form.Culture,
		"language":       form.Language,
		"region":         form.Region,
		"category":       form.Category,
		"description":    form.Description,
		"submitterName":  form.SubmitterName,
		"submitterEmail": form.SubmitterEmail,
	}
}

// parseBool follows the form convention: the literal "true" is true,
// everything else (including absence) is false.
func parseBool(value string) bool {
	return value == "true"
}

// parseTags splits a comma-separated tag string, trimming each segment and
// dropping empty ones.
func parseTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// assemble validates the form and builds a story candidate without
// attachments. Beyond the required-field check it is intentionally
// permissive: no email-format or consent enforcement.
func (s *SubmissionService) assemble(form SubmissionForm) (*models.Story, error) {
	for field, value := range requiredFields(form) {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s is required", models.ErrValidation, field)
		}
	}

	submissionType := form.SubmissionType
	if submissionType == "" {
		submissionType = models.SubmissionTypeText
	}

	return &models.Story{
		Title:           form.Title,
		Culture:         form.Culture,
		Language:        form.Language,
		Region:          form.Region,
		Category:        form.Category,
		AgeGroup:        form.AgeGroup,
		Difficulty:      form.Difficulty,
		Description:     form.Description,
		StoryText:       form.StoryText,
		Moral:           form.Moral,
		Narrator:        form.Narrator,
		SubmitterName:   form.SubmitterName,
		SubmitterEmail:  form.SubmitterEmail,
		CulturalContext: form.CulturalContext,
		Permissions:     parseBool(form.Permissions),
		Attribution:     parseBool(form.Attribution),
		RespectfulUse:   parseBool(form.RespectfulUse),
		SubmissionType:  submissionType,
		Tags:            parseTags(form.Tags),
		AudioFiles:      []models.Attachment{},
		ImageFiles:      []models.Attachment{},
		Status:          models.StatusPending,
		SubmittedAt:     time.Now().UTC(),
	}, nil
}

// uploadGroup uploads one file group sequentially and returns the
// attachments for the uploads that succeeded. Under the best-effort policy a
// failed file is logged, counted and skipped; under fail-request it aborts
// the submission.
func (s *SubmissionService) uploadGroup(ctx context.Context, files []SavedFile, group string) ([]models.Attachment, error) {
	opts := storage.UploadOptions{ResourceType: storage.ResourceTypeVideo, Folder: folderAudio}
	if group == groupImages {
		opts = storage.UploadOptions{ResourceType: storage.ResourceTypeImage, Folder: folderImages}
	}

	attachments := make([]models.Attachment, 0, len(files))
	for _, file := range files {
		result, err := s.media.Upload(ctx, file.Path, opts)
		if err != nil {
			uploadFailuresTotal.WithLabelValues(group).Inc()
			s.logger.Error("File upload failed",
				zap.String("group", group),
				zap.String("originalName", file.OriginalName),
				zap.Error(err),
			)
			if s.policy == config.UploadPolicyFailRequest {
				return nil, fmt.Errorf("%w: %s: %v", models.ErrUploadFailed, file.OriginalName, err)
			}
			continue
		}

		attachment := models.Attachment{
			Filename:     file.Filename,
			OriginalName: file.OriginalName,
			HostedURL:    result.SecureURL,
			HostedID:     result.PublicID,
			Size:         file.Size,
			UploadedAt:   time.Now().UTC(),
		}

		// Metadata probing is best-effort: a probe failure leaves the
		// attachment without dimensions or duration.
		switch group {
		case groupAudio:
			if duration, err := s.prober.AudioDuration(ctx, file.Path); err != nil {
				s.logger.Warn("Audio duration probe failed", zap.String("path", file.Path), zap.Error(err))
			} else {
				attachment.Duration = duration
			}
		case groupImages:
			if width, height, err := s.prober.ImageDimensions(file.Path); err != nil {
				s.logger.Warn("Image dimension probe failed", zap.String("path", file.Path), zap.Error(err))
			} else {
				attachment.Width = width
				attachment.Height = height
			}
		}

		uploadsTotal.WithLabelValues(group).Inc()
		s.logger.Info("File uploaded",
			zap.String("group", group),
			zap.String("originalName", file.OriginalName),
			zap.String("hostedUrl", result.SecureURL),
		)
		attachments = append(attachments, attachment)
	}

	return attachments, nil
}

// Submit runs the full pipeline and returns the persisted story.
// Persistence happens only after every upload attempt has resolved. There is
// no compensation for hosted media when the insert fails afterwards; such
// orphans are accepted and visible through the upload metrics and logs.
func (s *SubmissionService) Submit(ctx context.Context, form SubmissionForm, audio, images []SavedFile) (*models.Story, error) {
	story, err := s.assemble(form)
	if err != nil {
		return nil, err
	}

	if story.AudioFiles, err = s.uploadGroup(ctx, audio, groupAudio); err != nil {
		return nil, err
	}
	if story.ImageFiles, err = s.uploadGroup(ctx, images, groupImages); err != nil {
		return nil, err
	}

	stored, err := s.stories.Insert(ctx, story)
	if err != nil {
		return nil, err
	}

	s.statsCache.Invalidate(ctx)
	return stored, nil
}
