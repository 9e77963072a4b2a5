package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/nutriquiz/backend/internal/domain"
)

const s3Prefix = "plans/"

// S3Store keeps documents in a bucket under plans/<id>.pdf
type S3Store struct {
	client     *s3.Client
	bucket     string
	presignTTL time.Duration
}

// NewS3Store loads the AWS configuration from the environment or shared config
func NewS3Store(ctx context.Context, bucket, region string, presignTTL time.Duration) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3StoreFromClient(s3.NewFromConfig(awsCfg), bucket, presignTTL), nil
}

// NewS3StoreFromClient wraps an existing client
func NewS3StoreFromClient(client *s3.Client, bucket string, presignTTL time.Duration) *S3Store {
	return &S3Store{client: client, bucket: bucket, presignTTL: presignTTL}
}

func objectKey(id string) string {
	return s3Prefix + id + ".pdf"
}

// Put uploads data under id
func (s *S3Store) Put(ctx context.Context, id string, data []byte) error {
	if !domain.ValidDocumentID(id) {
		return domain.ErrInvalidRequest
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey(id)),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("upload document: %w", err)
	}
	return nil
}

// Get downloads the document stored under id
func (s *S3Store) Get(ctx context.Context, id string) ([]byte, error) {
	if !domain.ValidDocumentID(id) {
		return nil, domain.ErrInvalidRequest
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(id)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("download document: %w", err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// URL returns a presigned download link, or "" when presigning is disabled
func (s *S3Store) URL(ctx context.Context, id string) (string, error) {
	if s.presignTTL <= 0 {
		return "", nil
	}
	if !domain.ValidDocumentID(id) {
		return "", domain.ErrInvalidRequest
	}

	presigned, err := s3.NewPresignClient(s.client).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(id)),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", fmt.Errorf("presign document: %w", err)
	}
	return presigned.URL, nil
}
