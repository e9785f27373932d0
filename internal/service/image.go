package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/foodgram/backend/config"
	"github.com/google/uuid"
)

// ImageStorage accepts an inbound encoded image and returns a stable
// reference URL, stored verbatim on the recipe.
type ImageStorage interface {
	Store(ctx context.Context, encoded string) (string, error)
}

// S3ImageStorage decodes a base64 (optionally data-URL) payload and uploads
// it to S3, returning the public object URL.
type S3ImageStorage struct {
	s3Config *config.S3Config
}

func NewS3ImageStorage(s3Config *config.S3Config) *S3ImageStorage {
	return &S3ImageStorage{s3Config: s3Config}
}

func (s *S3ImageStorage) Store(ctx context.Context, encoded string) (string, error) {
	data, ext, err := decodeImagePayload(encoded)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("recipe-images/%s.%s", uuid.New().String(), ext)

	contentType := "image/" + ext
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName), nil
}

// decodeImagePayload handles both a bare base64 string and the
// "data:image/<ext>;base64,<payload>" form clients send.
func decodeImagePayload(encoded string) ([]byte, string, error) {
	ext := "png"
	payload := encoded
	if strings.HasPrefix(encoded, "data:") {
		header, rest, found := strings.Cut(encoded, ",")
		if !found {
			return nil, "", validationErr("invalid image payload.")
		}
		payload = rest
		if mime, ok := strings.CutPrefix(header, "data:image/"); ok {
			ext = strings.TrimSuffix(mime, ";base64")
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", validationErr("invalid image payload.")
	}
	return data, ext, nil
}

// PassthroughStorage keeps the reference as-is. Used in development and
// tests when no S3 bucket is configured.
type PassthroughStorage struct{}

func (PassthroughStorage) Store(ctx context.Context, encoded string) (string, error) {
	return encoded, nil
}
