package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS stores objects in a single Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS connects with credsFile, or application default credentials when empty.
func NewGCS(ctx context.Context, bucket, credsFile string) (*GCS, error) {
	b := strings.TrimSpace(bucket)
	if b == "" {
		return nil, fmt.Errorf("storage: GCS bucket is required")
	}

	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: new GCS client: %w", err)
	}
	return &GCS{client: client, bucket: b}, nil
}

func (g *GCS) Save(ctx context.Context, key string, r io.Reader, contentType string) (int64, error) {
	k, err := CleanKey(key)
	if err != nil {
		return 0, err
	}

	w := g.client.Bucket(g.bucket).Object(k).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"

	n, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return n, fmt.Errorf("storage: write gs://%s/%s: %w", g.bucket, k, err)
	}
	if err := w.Close(); err != nil {
		return n, fmt.Errorf("storage: close gs://%s/%s: %w", g.bucket, k, err)
	}
	return n, nil
}

func (g *GCS) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	k, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	rc, err := g.client.Bucket(g.bucket).Object(k).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotFound
	}
	return rc, err
}

func (g *GCS) Close() error {
	return g.client.Close()
}
