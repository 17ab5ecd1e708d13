package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// S3Config holds the settings for the S3-compatible media host.
type S3Config struct {
	Endpoint      string // custom endpoint for R2-style hosts; empty for AWS
	Region        string
	Bucket        string
	PublicBaseURL string // base URL under which uploaded keys are reachable
	AccessKey     string
	SecretKey     string
}

// Compile-time check that s3MediaStore implements MediaStore.
var _ MediaStore = (*s3MediaStore)(nil)

type s3MediaStore struct {
	client *s3.Client
	cfg    S3Config
	logger *zap.Logger
}

// NewS3MediaStore builds a MediaStore backed by an S3-compatible bucket.
func NewS3MediaStore(ctx context.Context, cfg S3Config, logger *zap.Logger) (MediaStore, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("media store access key and secret key must be set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
			o.UsePathStyle = true
		}
		o.Region = cfg.Region
	})

	return &s3MediaStore{
		client: client,
		cfg:    cfg,
		logger: logger.Named("S3MediaStore"),
	}, nil
}

// Upload puts the local file into the bucket under a generated key inside
// opts.Folder and returns the public URL plus the key as the hosted id.
func (s *s3MediaStore) Upload(ctx context.Context, localPath string, opts UploadOptions) (*UploadResult, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	ext := filepath.Ext(localPath)
	key := fmt.Sprintf("%s/%s%s", strings.Trim(opts.Folder, "/"), uuid.NewString(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	size := info.Size()
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &s.cfg.Bucket,
		Key:           &key,
		Body:          f,
		ContentLength: &size,
		ContentType:   &contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", localPath, err)
	}

	s.logger.Debug("Uploaded object",
		zap.String("key", key),
		zap.String("resource_type", opts.ResourceType),
		zap.Int64("bytes", size),
	)

	return &UploadResult{
		SecureURL: strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key,
		PublicID:  key,
		Bytes:     size,
	}, nil
}
