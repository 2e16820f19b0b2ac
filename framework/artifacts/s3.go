package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader mirrors run artifacts to an S3 bucket, under an optional key
// prefix. CI runs configure it so screenshots survive the build machine.
type S3Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Uploader builds an uploader from the ambient AWS configuration
// (environment variables, shared config files, instance role).
func NewS3Uploader(ctx context.Context, bucket, prefix string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	return NewS3UploaderWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// NewS3UploaderWithClient builds an uploader around an existing client, which
// lets tests point it at a local fake endpoint.
func NewS3UploaderWithClient(client *s3.Client, bucket, prefix string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix}
}

// Upload implements Uploader.
func (u *S3Uploader) Upload(ctx context.Context, key string, contentType string, data []byte) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(path.Join(u.prefix, key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("uploading %s to s3://%s: %w", key, u.bucket, err)
	}
	return nil
}
