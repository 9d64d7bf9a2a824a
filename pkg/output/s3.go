package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// DefaultRegion is used when no region is configured. Path-style
// S3-compatible endpoints accept it.
const DefaultRegion = "us-east-1"

// ErrMissingBucket is returned when uploads are requested without a bucket
var ErrMissingBucket = errors.New("no S3 bucket configured")

// S3Config holds the connection settings for an S3-compatible store
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
}

// S3Uploader uploads rendered images to an S3-compatible bucket
type S3Uploader struct {
	client s3iface.S3API
	bucket string
	logger core.Logger
}

// NewS3Uploader creates a session from cfg. Path-style addressing is used so
// that non-AWS endpoints work.
func NewS3Uploader(cfg S3Config, logger core.Logger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}

	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	awsConfig := &aws.Config{
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3UploaderWithClient(s3.New(sess), cfg.Bucket, logger), nil
}

// NewS3UploaderWithClient wraps an existing client
func NewS3UploaderWithClient(client s3iface.S3API, bucket string, logger core.Logger) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, logger: logger}
}

// Upload stores data under key
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if u.logger != nil {
		u.logger.Printf("Uploaded %s to S3 (%d bytes)\n", key, size)
	}
	return nil
}

// UploadImage encodes img in format and uploads it under key
func (u *S3Uploader) UploadImage(ctx context.Context, key string, img *renderer.Image, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return err
	}
	return u.Upload(ctx, key, buf.Bytes(), format.ContentType())
}
