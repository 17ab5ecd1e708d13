package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"folklore-server/internal/config"
	"folklore-server/internal/models"
	repomocks "folklore-server/internal/repository/mocks"
	"folklore-server/internal/service"
	"folklore-server/internal/storage"
	storagemocks "folklore-server/internal/storage/mocks"
)

type testEnv struct {
	router    *gin.Engine
	stories   *repomocks.StoryRepository
	contacts  *repomocks.ContactRepository
	cache     *repomocks.StatsCache
	media     *storagemocks.MediaStore
	prober    *storagemocks.Prober
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		stories:   new(repomocks.StoryRepository),
		contacts:  new(repomocks.ContactRepository),
		cache:     new(repomocks.StatsCache),
		media:     new(storagemocks.MediaStore),
		prober:    new(storagemocks.Prober),
		uploadDir: t.TempDir(),
	}

	log := zap.NewNop()
	submissions := service.NewSubmissionService(env.stories, env.cache, env.media, env.prober, config.UploadPolicyBestEffort, log)
	storySvc := service.NewStoryService(env.stories, env.cache, log)
	generator := service.NewGeneratorService(service.GeneratorConfig{APIKey: "test"}, log)
	janitor := storage.NewJanitor(log)

	apiHandler := NewAPIHandler(submissions, storySvc, generator, env.contacts, janitor, env.uploadDir, log)

	env.router = gin.New()
	apiHandler.RegisterRoutes(env.router)
	return env
}

type filePart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, files []filePart) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, file := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			`form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func validStoryFields() map[string]string {
	return map[string]string{
		"title":          "The River Spirit",
		"culture":        "Maori",
		"language":       "English",
		"region":         "New Zealand",
		"category":       "legend",
		"description":    "A tale about a guardian of the river.",
		"submitterName":  "Aroha",
		"submitterEmail": "aroha@example.com",
		"permissions":    "true",
		"attribution":    "true",
		"respectfulUse":  "true",
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestSubmitTextOnlyStory(t *testing.T) {
	env := newTestEnv(t)

	stored := &models.Story{
		ID:             primitive.NewObjectID(),
		Title:          "The River Spirit",
		SubmissionType: models.SubmissionTypeText,
		AudioFiles:     []models.Attachment{},
		ImageFiles:     []models.Attachment{},
		SubmittedAt:    time.Now().UTC(),
	}
	env.stories.On("Insert", mock.Anything, mock.Anything).Return(stored, nil)
	env.cache.On("Invalidate", mock.Anything).Return()

	body, contentType := multipartBody(t, validStoryFields(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/stories", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Story submitted successfully", payload["message"])

	story := payload["story"].(map[string]any)
	assert.Equal(t, stored.ID.Hex(), story["id"])
	assert.Equal(t, "text", story["submissionType"])
	assert.Equal(t, float64(0), story["audioFiles"])
	assert.Equal(t, float64(0), story["imageFiles"])
}

func TestSubmitMissingRequiredField(t *testing.T) {
	env := newTestEnv(t)

	fields := validStoryFields()
	delete(fields, "title")

	body, contentType := multipartBody(t, fields, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/stories", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, false, payload["success"])

	env.stories.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitRejectsInvalidImageType(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartBody(t, validStoryFields(), []filePart{
		{field: "imageFiles", filename: "doc.pdf", contentType: "application/pdf", data: []byte("%PDF-1.4")},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/stories", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, msgInvalidFileType, payload["message"])

	env.media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	env.stories.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitRejectsTooManyAudioFiles(t *testing.T) {
	env := newTestEnv(t)

	files := make([]filePart, 0, maxAudioFiles+1)
	for i := 0; i <= maxAudioFiles; i++ {
		files = append(files, filePart{
			field:       "audioFiles",
			filename:    "clip.mp3",
			contentType: "audio/mpeg",
			data:        []byte("id3"),
		})
	}

	body, contentType := multipartBody(t, validStoryFields(), files)
	req := httptest.NewRequest(http.MethodPost, "/api/stories", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env.media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitImageFileCleansTempDir(t *testing.T) {
	env := newTestEnv(t)

	env.media.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return(&storage.UploadResult{SecureURL: "https://cdn.example.com/folklore/images/x.png", PublicID: "folklore/images/x.png"}, nil)
	env.prober.On("ImageDimensions", mock.Anything).Return(1, 1, nil)

	stored := &models.Story{
		ID:             primitive.NewObjectID(),
		Title:          "The River Spirit",
		SubmissionType: models.SubmissionTypeMixed,
		AudioFiles:     []models.Attachment{},
		ImageFiles:     []models.Attachment{{HostedURL: "https://cdn.example.com/folklore/images/x.png"}},
		SubmittedAt:    time.Now().UTC(),
	}
	env.stories.On("Insert", mock.Anything, mock.Anything).Return(stored, nil)
	env.cache.On("Invalidate", mock.Anything).Return()

	fields := validStoryFields()
	fields["submissionType"] = "mixed"
	body, contentType := multipartBody(t, fields, []filePart{
		{field: "imageFiles", filename: "mask.png", contentType: "image/png", data: []byte("png-bytes")},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/stories", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	payload := decodeBody(t, w)
	story := payload["story"].(map[string]any)
	assert.Equal(t, float64(1), story["imageFiles"])

	// The janitor must have removed the temp artifact.
	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSubmitCleansTempDirOnPersistenceFailure(t *testing.T) {
	env := newTestEnv(t)

	env.media.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return(&storage.UploadResult{SecureURL: "https://cdn.example.com/x", PublicID: "x"}, nil)
	env.prober.On("ImageDimensions", mock.Anything).Return(1, 1, nil)
	env.stories.On("Insert", mock.Anything, mock.Anything).Return(nil, models.ErrPersistence)

	body, contentType := multipartBody(t, validStoryFields(), []filePart{
		{field: "imageFiles", filename: "mask.png", contentType: "image/png", data: []byte("png-bytes")},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/stories", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, false, payload["success"])

	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListStoriesPagination(t *testing.T) {
	env := newTestEnv(t)

	stories := []models.Story{
		{ID: primitive.NewObjectID(), Title: "Newer"},
		{ID: primitive.NewObjectID(), Title: "Older"},
	}
	env.stories.On("List", mock.Anything,
		models.StoryFilter{Status: models.StatusApproved},
		int64(2), int64(20),
	).Return(stories, int64(45), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stories?page=2&limit=20", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, true, payload["success"])

	pagination := payload["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["current"])
	assert.Equal(t, float64(3), pagination["total"])
	assert.Equal(t, float64(2), pagination["count"])
	assert.Equal(t, float64(45), pagination["totalStories"])

	// Repository projections strip the email; the payload must never
	// contain the field at all.
	assert.NotContains(t, w.Body.String(), "submitterEmail")
}

func TestListStoriesFilterPassthrough(t *testing.T) {
	env := newTestEnv(t)

	env.stories.On("List", mock.Anything,
		models.StoryFilter{Status: models.StatusPending, Category: "myth", Culture: "Inuit", SubmissionType: "audio"},
		int64(1), int64(20),
	).Return([]models.Story{}, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stories?status=pending&category=myth&culture=Inuit&submissionType=audio", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env.stories.AssertExpectations(t)
}

func TestGetStoryNotFound(t *testing.T) {
	env := newTestEnv(t)

	env.stories.On("GetByID", mock.Anything, "64b000000000000000000000").
		Return(nil, models.ErrStoryNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/64b000000000000000000000", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, msgStoryNotFound, payload["message"])
}

func TestGetStoryByID(t *testing.T) {
	env := newTestEnv(t)

	story := &models.Story{ID: primitive.NewObjectID(), Title: "The River Spirit"}
	env.stories.On("GetByID", mock.Anything, story.ID.Hex()).Return(story, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/"+story.ID.Hex(), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "The River Spirit", payload["story"].(map[string]any)["title"])
}

func TestGetStats(t *testing.T) {
	env := newTestEnv(t)

	stats := &models.StoryStats{
		TotalStories:   3,
		PendingStories: 1,
		CategoriesStats: []models.StatBucket{
			{ID: "legend", Count: 2},
			{ID: "myth", Count: 1},
		},
		CulturesStats:       []models.StatBucket{{ID: "Maori", Count: 3}},
		SubmissionTypeStats: []models.StatBucket{{ID: "text", Count: 3}},
	}
	env.cache.On("Get", mock.Anything).Return(stats, true)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/stats", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	got := payload["stats"].(map[string]any)
	assert.Equal(t, float64(3), got["totalStories"])
	assert.Equal(t, float64(1), got["pendingStories"])
	assert.Len(t, got["categoriesStats"], 2)
}

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)

	env.contacts.On("Insert", mock.Anything, mock.Anything).
		Return(&models.Contact{ID: primitive.NewObjectID(), Name: "Aroha", Subject: "Feedback"}, nil)

	payload := `{"name":"Aroha","email":"aroha@example.com","subject":"Feedback","message":"Kia ora","consent":true,"submittedAt":"2026-08-28T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Aroha", body["contact"].(map[string]any)["name"])
}

func TestSubmitContactPersistenceError(t *testing.T) {
	env := newTestEnv(t)

	env.contacts.On("Insert", mock.Anything, mock.Anything).
		Return(nil, models.ErrPersistence)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestGenerateRequiresPrompt(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParsePositiveInt(t *testing.T) {
	assert.Equal(t, int64(3), parsePositiveInt("3", 1))
	assert.Equal(t, int64(1), parsePositiveInt("0", 1))
	assert.Equal(t, int64(20), parsePositiveInt("abc", 20))
	assert.Equal(t, int64(20), parsePositiveInt("-5", 20))
}

func TestSaveTempFilesWritesToUploadDir(t *testing.T) {
	env := newTestEnv(t)

	stored := &models.Story{
		ID:          primitive.NewObjectID(),
		AudioFiles:  []models.Attachment{{OriginalName: "clip.mp3"}},
		ImageFiles:  []models.Attachment{},
		SubmittedAt: time.Now().UTC(),
	}
	env.stories.On("Insert", mock.Anything, mock.Anything).Return(stored, nil)
	env.cache.On("Invalidate", mock.Anything).Return()
	env.prober.On("AudioDuration", mock.Anything, mock.Anything).Return(3.0, nil)

	var uploadedPath string
	env.media.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			uploadedPath = args.String(1)
		}).
		Return(&storage.UploadResult{SecureURL: "https://cdn.example.com/a", PublicID: "a"}, nil)

	body, contentType := multipartBody(t, validStoryFields(), []filePart{
		{field: "audioFiles", filename: "clip.mp3", contentType: "audio/mpeg", data: []byte("id3-data")},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/stories", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, uploadedPath)
	assert.Equal(t, env.uploadDir, filepath.Dir(uploadedPath))
	assert.Contains(t, filepath.Base(uploadedPath), "audioFiles-")
	assert.Equal(t, ".mp3", filepath.Ext(uploadedPath))
}
