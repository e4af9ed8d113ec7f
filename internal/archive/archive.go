// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package archive keeps a copy of every raw export file in S3-compatible
// object storage.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

//go:generate mockgen -source=archive.go -destination=../mock/archive_mock.go -package=mock

var ErrEmptyKey = errors.New("archive: empty object key")

// Archiver stores raw export payloads.
type Archiver interface {
	// Store uploads data and returns the object location.
	Store(ctx context.Context, resource, runID string, data []byte, contentType string) (string, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Archiver struct {
	client objectPutter
	bucket string
	prefix string
	logger *logger.Logger
}

// New returns an S3 archiver when cfg.Bucket is set and a no-op archiver otherwise.
func New(ctx context.Context, cfg config.Archive, log *logger.Logger) (Archiver, error) {
	if cfg.Bucket == "" {
		log.Debug().Str("func", "archive.New").Msg("export archiving disabled")
		return Nop{}, nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	log.Info().Str("func", "archive.New").Str("bucket", cfg.Bucket).Msg("export archiving enabled")
	return newS3Archiver(client, cfg.Bucket, cfg.Prefix, log), nil
}

func newS3Archiver(client objectPutter, bucket, prefix string, log *logger.Logger) *s3Archiver {
	return &s3Archiver{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: log,
	}
}

// Store implements [Archiver]. Objects are keyed <prefix>/<resource>/<runID><ext>.
func (a *s3Archiver) Store(ctx context.Context, resource, runID string, data []byte, contentType string) (string, error) {
	key := ObjectKey(a.prefix, resource, runID, contentType)
	if key == "" {
		return "", ErrEmptyKey
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3Archiver.Store").Str("key", key).Msg("failed to upload export")
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, a.bucket, err)
	}

	location := "s3://" + a.bucket + "/" + key
	logger.FromContext(ctx).Info().Str("func", "*s3Archiver.Store").
		Str("location", location).
		Int("bytes", len(data)).
		Msg("export archived")
	return location, nil
}

// ObjectKey builds the object key of an archived payload.
func ObjectKey(prefix, resource, runID, contentType string) string {
	if resource == "" || runID == "" {
		return ""
	}
	return path.Join(prefix, resource, runID+extension(contentType))
}

func extension(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return ".json"
	case strings.Contains(ct, "zip"):
		return ".zip"
	case strings.Contains(ct, "csv"):
		return ".csv"
	case strings.HasPrefix(ct, "text/"):
		return ".txt"
	default:
		return ".bin"
	}
}

// Nop discards payloads.
type Nop struct{}

func (Nop) Store(context.Context, string, string, []byte, string) (string, error) {
	return "", nil
}
