package artifacts

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeS3Client(t *testing.T, bucket string) *s3.Client {
	t.Helper()

	faker := gofakes3.New(s3mem.New())
	server := httptest.NewServer(faker.Server())
	t.Cleanup(server.Close)

	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test", "test", ""),
		),
	)
	require.NoError(t, err)

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(server.URL)
		o.UsePathStyle = true
	})
	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	require.NoError(t, err)
	return client
}

func TestS3UploaderPutsObjectUnderPrefix(t *testing.T) {
	const bucket = "run-artifacts"
	client := newFakeS3Client(t, bucket)
	uploader := NewS3UploaderWithClient(client, bucket, "e2e")

	ctx := context.Background()
	err := uploader.Upload(ctx, "run1/shot.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String("e2e/run1/shot.png"),
	})
	require.NoError(t, err)
	defer out.Body.Close()
	body, err := io.ReadAll(out.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", aws.ToString(out.ContentType))
}

func TestS3UploaderReportsMissingBucket(t *testing.T) {
	client := newFakeS3Client(t, "exists")
	uploader := NewS3UploaderWithClient(client, "does-not-exist", "")

	err := uploader.Upload(context.Background(), "k", "text/plain", []byte("x"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestStoreFlushThroughS3Uploader(t *testing.T) {
	const bucket = "run-artifacts"
	client := newFakeS3Client(t, bucket)

	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	_, err = store.SaveFile("final.png", []byte("capture"))
	require.NoError(t, err)
	store.WithUploader(NewS3UploaderWithClient(client, bucket, ""))

	ctx := context.Background()
	require.NoError(t, store.Flush(ctx))

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(store.RunID() + "/final.png"),
	})
	require.NoError(t, err)
	defer out.Body.Close()
	body, err := io.ReadAll(out.Body)
	require.NoError(t, err)
	assert.Equal(t, "capture", string(body))
}
