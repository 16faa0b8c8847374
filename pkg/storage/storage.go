// Package storage puts uploaded gallery images into an S3 bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.ReadSeeker) (string, error)
}

type s3Uploader struct {
	client s3iface.S3API
	bucket string
	region string
}

// NewS3Uploader opens an AWS session with static credentials. Empty
// credentials fall back to the SDK's default chain (env, shared config,
// instance role).
func NewS3Uploader(bucket, region, accessKeyID, secretAccessKey string) (Uploader, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if accessKeyID != "" && secretAccessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(accessKeyID, secretAccessKey, "")
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return newS3Uploader(s3.New(sess), bucket, region), nil
}

func newS3Uploader(client s3iface.S3API, bucket, region string) *s3Uploader {
	return &s3Uploader{client: client, bucket: bucket, region: region}
}

func (u *s3Uploader) Upload(ctx context.Context, key, contentType string, body io.ReadSeeker) (string, error) {
	key = strings.TrimPrefix(key, "/")

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return u.URL(key), nil
}

// URL is the virtual-hosted style URL of key.
func (u *s3Uploader) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}
