package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"newsdesk/internal/core"
)

var (
	// ErrNoFile is returned when a request carries no file part
	ErrNoFile = errors.New("no file provided")
	// ErrUploadFailed wraps every object storage failure
	ErrUploadFailed = errors.New("upload failed")
)

// ObjectStore writes objects under a key
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// S3Store writes to an S3-compatible bucket such as Cloudflare R2 or MinIO
type S3Store struct {
	client *s3.Client
	bucket string
	logger *core.Logger
}

// R2Endpoint returns the S3 API endpoint of a Cloudflare account
func R2Endpoint(accountID string) string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
}

// NewS3Store creates a store from the upload configuration. An explicit
// endpoint switches to path-style addressing for MinIO and friends.
func NewS3Store(cfg core.UploadsConfig, logger *core.Logger) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}

	endpoint := cfg.Endpoint
	pathStyle := endpoint != ""
	if endpoint == "" {
		if cfg.AccountID == "" {
			return nil, errors.New("account id or endpoint is required")
		}
		endpoint = R2Endpoint(cfg.AccountID)
	}

	client := s3.New(s3.Options{
		Region:                     "auto",
		Credentials:                credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		BaseEndpoint:               aws.String(endpoint),
		UsePathStyle:               pathStyle,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

// PutObject uploads body under key
func (s *S3Store) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return wrapS3Error(err, key)
	}
	return nil
}

func wrapS3Error(err error, key string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: put %s: %s: %s", ErrUploadFailed, key, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("%w: put %s: %v", ErrUploadFailed, key, err)
}
