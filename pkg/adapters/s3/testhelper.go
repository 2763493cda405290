package s3

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
)

// TestServer starts an in-memory S3 server with bucket already created and
// returns a Config pointing at it. The server is closed when the test ends.
func TestServer(t testing.TB, bucket string) Config {
	t.Helper()

	faker := gofakes3.New(s3mem.New())
	ts := httptest.NewServer(faker.Server())
	t.Cleanup(ts.Close)

	cfg := Config{
		Endpoint:        ts.URL,
		Region:          "us-east-1",
		Bucket:          bucket,
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		UsePathStyle:    true,
	}

	ctx := context.Background()
	store, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	_, err = store.client.CreateBucket(ctx, &awss3.CreateBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		t.Fatalf("failed to create test bucket: %v", err)
	}
	return cfg
}

// TestStore returns a Store backed by a fresh TestServer.
func TestStore(t testing.TB, bucket string) *Store {
	t.Helper()
	store, err := New(context.Background(), TestServer(t, bucket))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}
