package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const grantValidity = 15 * time.Minute

type s3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	region  string
}

func newS3Store(client *s3.Client, presign *s3.PresignClient, bucket, region string) *s3Store {
	return &s3Store{client: client, presign: presign, bucket: bucket, region: region}
}

func (s *s3Store) Store(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	key := s.freshKey(originalName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.objectURL(key), nil
}

func (s *s3Store) CreateUploadGrant(ctx context.Context, fileName, contentType string) (*UploadGrant, error) {
	key := s.freshKey(fileName)

	signed, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(grantValidity))
	if err != nil {
		return nil, fmt.Errorf("presign put object: %w", err)
	}

	return &UploadGrant{UploadURL: signed.URL, FileURL: s.objectURL(key)}, nil
}

func (s *s3Store) freshKey(originalName string) string {
	return "uploads/" + uuid.NewString() + filepath.Ext(originalName)
}

func (s *s3Store) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
