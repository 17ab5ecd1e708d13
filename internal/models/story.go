package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission types accepted for a story.
const (
	SubmissionTypeText  = "text"
	SubmissionTypeAudio = "audio"
	SubmissionTypeMixed = "mixed"
)

// Moderation states. Stories enter as pending; status transitions happen
// outside this service.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Attachment is a hosted media file (audio or image) owned by exactly one
// Story. Duration is populated for audio, Width/Height for images; both are
// best-effort and may be zero when probing fails.
type Attachment struct {
	Filename     string    `bson:"filename" json:"filename"`
	OriginalName string    `bson:"originalName" json:"originalName"`
	HostedURL    string    `bson:"hostedUrl" json:"hostedUrl"`
	HostedID     string    `bson:"hostedId" json:"hostedId"`
	Duration     float64   `bson:"duration,omitempty" json:"duration,omitempty"`
	Width        int       `bson:"width,omitempty" json:"width,omitempty"`
	Height       int       `bson:"height,omitempty" json:"height,omitempty"`
	Size         int64     `bson:"size" json:"size"`
	UploadedAt   time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Story is a persisted folklore submission with descriptive metadata and
// zero or more media attachments.
type Story struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`

	// Basic information
	Title       string `bson:"title" json:"title"`
	Culture     string `bson:"culture" json:"culture"`
	Language    string `bson:"language" json:"language"`
	Region      string `bson:"region" json:"region"`
	Category    string `bson:"category" json:"category"`
	AgeGroup    string `bson:"ageGroup,omitempty" json:"ageGroup,omitempty"`
	Difficulty  string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Description string `bson:"description" json:"description"`

	// Story content
	StoryText string `bson:"storyText,omitempty" json:"storyText,omitempty"`
	Moral     string `bson:"moral,omitempty" json:"moral,omitempty"`

	// Media
	AudioFiles []Attachment `bson:"audioFiles" json:"audioFiles"`
	ImageFiles []Attachment `bson:"imageFiles" json:"imageFiles"`

	// Metadata. SubmitterEmail is stored but always excluded from read
	// projections, hence omitempty on the JSON side.
	Tags            []string `bson:"tags" json:"tags"`
	Narrator        string   `bson:"narrator,omitempty" json:"narrator,omitempty"`
	SubmitterName   string   `bson:"submitterName" json:"submitterName"`
	SubmitterEmail  string   `bson:"submitterEmail,omitempty" json:"submitterEmail,omitempty"`
	CulturalContext string   `bson:"culturalContext,omitempty" json:"culturalContext,omitempty"`

	// Consent flags, parsed from the form but not enforced server-side.
	Permissions   bool `bson:"permissions" json:"permissions"`
	Attribution   bool `bson:"attribution" json:"attribution"`
	RespectfulUse bool `bson:"respectfulUse" json:"respectfulUse"`

	SubmissionType string    `bson:"submissionType" json:"submissionType"`
	Status         string    `bson:"status" json:"status"`
	SubmittedAt    time.Time `bson:"submittedAt" json:"submittedAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StoryFilter is a conjunction of optional equality predicates applied when
// listing stories. Empty fields are ignored.
type StoryFilter struct {
	Status         string
	Category       string
	Culture        string
	SubmissionType string
}

// StatBucket is one group-by-count row of an aggregation, keyed by the
// grouped value.
type StatBucket struct {
	ID    string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// StoryStats holds the aggregate numbers exposed on the stats endpoint.
// All breakdowns are restricted to approved stories.
type StoryStats struct {
	TotalStories        int64        `json:"totalStories"`
	PendingStories      int64        `json:"pendingStories"`
	CategoriesStats     []StatBucket `json:"categoriesStats"`
	CulturesStats       []StatBucket `json:"culturesStats"`
	SubmissionTypeStats []StatBucket `json:"submissionTypeStats"`
}
