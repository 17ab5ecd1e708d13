package storage

import "context"

// Resource type hints passed to the media host. Audio rides the host's
// generic video pipeline, matching the upstream transcoding behavior.
const (
	ResourceTypeImage = "image"
	ResourceTypeVideo = "video"
)

// UploadOptions direct a single upload at the media host.
type UploadOptions struct {
	ResourceType string // "image" or "video"
	Folder       string // destination folder, e.g. "folklore/images"
}

// UploadResult describes the hosted object after a successful upload.
type UploadResult struct {
	SecureURL string // public URL of the hosted object
	PublicID  string // host-side identifier, usable for later deletion
	Bytes     int64  // stored size
}

// MediaStore uploads local files to the external media host.
type MediaStore interface {
	Upload(ctx context.Context, localPath string, opts UploadOptions) (*UploadResult, error)
}
