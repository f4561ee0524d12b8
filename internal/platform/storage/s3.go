// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

/*
Package storage provides the object store used for member portrait images.

It targets any S3-compatible endpoint (Cloudflare R2 in production). Image
bytes live in the bucket; only the object key is stored in PostgreSQL.
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/config"
)

// ObjectStore is the contract the portrait service depends on.
type ObjectStore interface {
	/*
		Upload writes an object under the given key.

		Parameters:
		  - context: context.Context
		  - key: string (Bucket-relative object key)
		  - content: io.Reader (Raw image bytes)
		  - contentType: string (MIME type, e.g. "image/jpeg")

		Returns:
		  - error: Upstream storage failures
	*/
	Upload(context context.Context, key string, content io.Reader, contentType string) error

	/*
		Delete removes an object by key. Deleting a missing key is not an error.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - error: Upstream storage failures
	*/
	Delete(context context.Context, key string) error

	/*
		PresignGet returns a time-limited download URL for an object.

		Parameters:
		  - context: context.Context
		  - key: string
		  - expiry: time.Duration (Link lifetime)

		Returns:
		  - string: Signed HTTPS URL
		  - error: Signing failures
	*/
	PresignGet(context context.Context, key string, expiry time.Duration) (string, error)
}

// S3Store implements [ObjectStore] on top of the AWS SDK v2 client.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds an S3 client from the application config.
// A custom endpoint switches the client to an S3-compatible provider.
func NewS3Store(context context.Context, cfg *config.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context,
		awsconfig.WithRegion(cfg.S3Region),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.S3Endpoint != "" {
			options.BaseEndpoint = aws.String(cfg.S3Endpoint)
			options.UsePathStyle = true
		}
	})

	return &S3Store{
		client: client,
		bucket: cfg.S3Bucket,
	}, nil
}

func (store *S3Store) Upload(context context.Context, key string, content io.Reader, contentType string) error {
	_, err := store.client.PutObject(context, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: failed to upload object %q: %w", key, err)
	}

	return nil
}

func (store *S3Store) Delete(context context.Context, key string) error {
	_, err := store.client.DeleteObject(context, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: failed to delete object %q: %w", key, err)
	}

	return nil
}

func (store *S3Store) PresignGet(context context.Context, key string, expiry time.Duration) (string, error) {
	presigner := s3.NewPresignClient(store.client)

	request, err := presigner.PresignGetObject(context, &s3.GetObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	}, func(options *s3.PresignOptions) {
		options.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to presign object %q: %w", key, err)
	}

	return request.URL, nil
}
