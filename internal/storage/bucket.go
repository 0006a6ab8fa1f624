package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ketomate/backend/internal/config"
)

// Bucket wraps the GCS client for meal photo uploads. Objects are
// publicly readable and served through the CDN domain when configured.
type Bucket struct {
	client    *gcs.Client
	name      string
	cdnDomain string
}

func NewBucket(ctx context.Context, cfg *config.Config) (*Bucket, error) {
	if cfg.GCSBucket == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET")
	}

	opts := []option.ClientOption{option.WithScopes(gcs.ScopeReadWrite)}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Bucket{
		client:    client,
		name:      cfg.GCSBucket,
		cdnDomain: strings.TrimSuffix(cfg.GCSCDNDomain, "/"),
	}, nil
}

// Upload writes an object and returns its public URL.
func (b *Bucket) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	w := b.client.Bucket(b.name).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", key, err)
	}

	return b.PublicURL(key), nil
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := b.client.Bucket(b.name).Object(key).Delete(ctx)
	if err != nil && err != gcs.ErrObjectNotExist {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (b *Bucket) PublicURL(key string) string {
	if b.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", b.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.name, key)
}

func (b *Bucket) Close() error {
	return b.client.Close()
}
