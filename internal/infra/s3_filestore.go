package infra

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config contains S3 storage configuration
type S3Config struct {
	Endpoint        string // custom endpoint for MinIO or Spaces
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool   // required for MinIO
	PublicBaseURL   string // prefix for returned URLs; empty means no URL
}

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3FileStore stores thumbnails in an S3-compatible bucket.
type S3FileStore struct {
	client    s3API
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewS3FileStore(ctx context.Context, cfg S3Config) (*S3FileStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("S3 credentials are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3FileStore(client, cfg.Bucket, cfg.PublicBaseURL), nil
}

func newS3FileStore(client s3API, bucket, publicURL string) *S3FileStore {
	return &S3FileStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}
}

// UploadFile stores data under thumbnails/YYYY/MM/<uuid><ext>.
func (s *S3FileStore) UploadFile(ctx context.Context, name, contentType string, data []byte) (*models.FileRef, error) {
	ext := path.Ext(name)
	if ext == "" {
		ext = ".jpg"
	}

	now := s.now()
	key := fmt.Sprintf("thumbnails/%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail to S3: %w", err)
	}

	ref := &models.FileRef{Name: key}
	if s.publicURL != "" {
		ref.URL = s.publicURL + "/" + key
	}
	return ref, nil
}
