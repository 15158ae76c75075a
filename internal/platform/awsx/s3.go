package awsx

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// s3API is the subset of the S3 client used by the image store.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore stores uploaded profile images in an S3 bucket and yields the
// object key as the opaque path handed to the profile update.
type S3ImageStore struct {
	api       s3API
	bucket    string
	keyPrefix string
}

// NewS3ImageStore creates an image store writing into the given bucket.
// keyPrefix may be empty; when set it namespaces all object keys (e.g.
// "uploads").
func NewS3ImageStore(api s3API, bucket, keyPrefix string) *S3ImageStore {
	return &S3ImageStore{
		api:       api,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

// Save uploads the image and returns its stored path. The key is a fresh
// UUID plus the original file extension, so uploads never collide and the
// original filename never reaches storage.
func (s *S3ImageStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := uuid.New().String() + strings.ToLower(path.Ext(filename))
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.api.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload profile image: %w", err)
	}

	return "/" + key, nil
}
