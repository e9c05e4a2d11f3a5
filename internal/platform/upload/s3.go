// Package upload stores avatar images in an S3-compatible object store.
package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "contacts_backend/internal/app/config"
)

// s3API is the subset of the S3 client used by the uploader.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader uploads avatar images and returns their public URL.
// A custom endpoint makes it work against MinIO in development.
type S3Uploader struct {
	client        s3API
	bucket        string
	publicBaseURL string
}

// NewS3Uploader builds an S3 client from the given settings.
func NewS3Uploader(ctx context.Context, cfg appconfig.S3Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = cfg.Endpoint
	}

	return &S3Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}, nil
}

// Upload stores the image under a date-scoped random key and returns its
// public URL. The original filename only contributes its extension.
func (u *S3Uploader) Upload(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error) {
	key := objectKey(filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          content,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", u.publicBaseURL, u.bucket, key), nil
}

// objectKey builds a collision-free storage key like
// avatars/2026/8/9f2c...-d4.png.
func objectKey(filename string) string {
	d := time.Now()
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("avatars/%d/%d/%v%s", d.Year(), int(d.Month()), uuid.New(), ext)
}
