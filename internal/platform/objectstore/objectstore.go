// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package objectstore archives exported files in an S3-compatible bucket.
package objectstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options configures the connection to the bucket.
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// bucketAPI is the subset of *minio.Client the store needs; tests fake it.
type bucketAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// minioAdapter narrows *minio.Client to bucketAPI.
type minioAdapter struct{ client *minio.Client }

func (adapter minioAdapter) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return adapter.client.BucketExists(ctx, bucketName)
}

func (adapter minioAdapter) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return adapter.client.MakeBucket(ctx, bucketName, opts)
}

func (adapter minioAdapter) PutObject(ctx context.Context, bucketName, objectName string, reader *bytes.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return adapter.client.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

// Store writes objects into a single bucket.
type Store struct {
	api    bucketAPI
	bucket string
	region string
}

// New connects to the endpoint and makes sure the bucket exists.
func New(ctx context.Context, options Options) (*Store, error) {
	client, err := minio.New(options.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure: options.UseSSL,
		Region: options.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: client: %w", err)
	}
	return newWithAPI(ctx, minioAdapter{client: client}, options.Bucket, options.Region)
}

func newWithAPI(ctx context.Context, api bucketAPI, bucket, region string) (*Store, error) {
	store := &Store{api: api, bucket: bucket, region: region}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (store *Store) ensureBucket(ctx context.Context) error {
	exists, err := store.api.BucketExists(ctx, store.bucket)
	if err != nil {
		return fmt.Errorf("objectstore: check bucket %s: %w", store.bucket, err)
	}
	if exists {
		return nil
	}

	if err := store.api.MakeBucket(ctx, store.bucket, minio.MakeBucketOptions{Region: store.region}); err != nil {
		return fmt.Errorf("objectstore: create bucket %s: %w", store.bucket, err)
	}
	return nil
}

// Put uploads body under key and returns the stored key.
func (store *Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	reader := bytes.NewReader(body)
	info, err := store.api.PutObject(ctx, store.bucket, key, reader, int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("objectstore: put %s: %w", key, err)
	}
	return info.Key, nil
}
