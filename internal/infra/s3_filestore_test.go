package infra

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3FileStoreUpload(t *testing.T) {
	api := &fakeS3{}
	store := newS3FileStore(api, "reels", "https://cdn.example.com/")
	store.now = func() time.Time { return time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC) }

	ref, err := store.UploadFile(context.Background(), "thumbnail.jpg", "image/jpeg", []byte("jpg"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^thumbnails/2026/03/[0-9a-f-]{36}\.jpg$`), ref.Name)
	assert.Equal(t, "https://cdn.example.com/"+ref.Name, ref.URL)
	assert.Equal(t, "reels", aws.ToString(api.in.Bucket))
	assert.Equal(t, ref.Name, aws.ToString(api.in.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(api.in.ContentType))
	assert.Equal(t, []byte("jpg"), api.body)
}

func TestS3FileStoreUploadError(t *testing.T) {
	store := newS3FileStore(&fakeS3{err: errors.New("access denied")}, "reels", "")

	_, err := store.UploadFile(context.Background(), "thumbnail.jpg", "image/jpeg", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestNewS3FileStoreValidates(t *testing.T) {
	_, err := NewS3FileStore(context.Background(), S3Config{Region: "us-east-1"})
	assert.Error(t, err)
	_, err = NewS3FileStore(context.Background(), S3Config{Bucket: "b", Region: "r"})
	assert.Error(t, err)
}
