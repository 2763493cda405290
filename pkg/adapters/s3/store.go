// Package s3 stores key-value pairs as objects in an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/introspection"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Config holds the configuration for the S3 store.
type Config struct {
	// Endpoint is the S3 endpoint URL. Leave empty to use AWS.
	Endpoint string `yaml:"endpoint"`
	// Region is the AWS region (e.g. "us-east-1", or "auto" for some providers).
	Region string `yaml:"region"`
	// Bucket is the bucket holding the values. It must already exist.
	Bucket string `yaml:"bucket"`
	// Prefix is prepended to every object key (e.g. "notepad/").
	Prefix          string `yaml:"prefix"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	// UsePathStyle enables path-style addressing, required by most S3-compatible servers.
	UsePathStyle bool `yaml:"use_path_style"`

	Logger *slog.Logger `yaml:"-"`
}

// Store implements a key-value backend where each key is one object
// "<prefix><key>.json".
type Store struct {
	client *awss3.Client
	bucket string
	prefix string
	logger *slog.Logger

	reads  atomic.Int64
	writes atomic.Int64
}

// New creates a Store from cfg, loading the default AWS configuration chain
// and overriding credentials when both keys are given.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(sdkConfig, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewFromClient(client, cfg), nil
}

// NewFromClient creates a Store from an existing S3 client. Only Bucket,
// Prefix and Logger are read from cfg.
func NewFromClient(client *awss3.Client, cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix, logger: logger}
}

// ObjectKey returns the object key that holds key.
func (s *Store) ObjectKey(key string) string {
	return s.prefix + key + ".json"
}

// Get downloads the object for key. NoSuchKey and NotFound report not found.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.reads.Add(1)
	objectKey := s.ObjectKey(key)

	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, false, nil
		}
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get object %q: %w", objectKey, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read object body %q: %w", objectKey, err)
	}
	return data, true, nil
}

// Set uploads value as the object for key. A single PutObject replaces the
// object atomically.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	objectKey := s.ObjectKey(key)
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", objectKey, err)
	}
	s.writes.Add(1)
	s.logger.Debug("object written", "bucket", s.bucket, "key", objectKey, "bytes", len(value))
	return nil
}

// Bucket returns the configured bucket name.
func (s *Store) Bucket() string {
	return s.bucket
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix"`
	Reads  int64  `json:"reads"`
	Writes int64  `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{Bucket: s.bucket, Prefix: s.prefix, Reads: s.reads.Load(), Writes: s.writes.Load()}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "s3"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
