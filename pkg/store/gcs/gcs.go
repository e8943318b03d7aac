// Package gcs implements a Google Cloud Storage artifact store.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/reifyd/scriptify/pkg/store"
)

func init() {
	store.Register("gcs", NewBackend)
}

// Backend implements the store backend interface for Google Cloud
// Storage.
type Backend struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewBackend creates a new GCS backend.
func NewBackend(cfg map[string]string) (store.Backend, error) {
	bucketName, ok := cfg["bucket"]
	if !ok || bucketName == "" {
		return nil, fmt.Errorf("gcs backend requires 'bucket' configuration")
	}

	ctx := context.Background()
	var opts []option.ClientOption

	// Support explicit credentials file
	if credentialsFile := cfg["credentials"]; credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	// Support credentials JSON
	if credentialsJSON := cfg["credentials_json"]; credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	// Support custom endpoint (for emulator)
	if endpoint := cfg["endpoint"]; endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
		opts = append(opts, option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &Backend{
		client: client,
		bucket: bucketName,
		prefix: cfg["prefix"],
	}, nil
}

func (b *Backend) Type() string {
	return "gcs"
}

func (b *Backend) Read(ctx context.Context, artifactPath string) (io.ReadCloser, error) {
	objectPath := b.fullPath(artifactPath)

	reader, err := b.client.Bucket(b.bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", b.bucket, objectPath, err)
	}

	return reader, nil
}

func (b *Backend) Write(ctx context.Context, artifactPath string, data io.Reader) error {
	objectPath := b.fullPath(artifactPath)

	writer := b.client.Bucket(b.bucket).Object(objectPath).NewWriter(ctx)
	if _, err := io.Copy(writer, data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write gs://%s/%s: %w", b.bucket, objectPath, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write gs://%s/%s: %w", b.bucket, objectPath, err)
	}

	return nil
}

func (b *Backend) Delete(ctx context.Context, artifactPath string) error {
	objectPath := b.fullPath(artifactPath)

	err := b.client.Bucket(b.bucket).Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete gs://%s/%s: %w", b.bucket, objectPath, err)
	}

	return nil
}

func (b *Backend) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := b.fullPath(prefix)

	var paths []string
	it := b.client.Bucket(b.bucket).Objects(ctx, &storage.Query{Prefix: fullPrefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list gs://%s/%s: %w", b.bucket, fullPrefix, err)
		}
		paths = append(paths, b.relPath(attrs.Name))
	}

	return paths, nil
}

func (b *Backend) Exists(ctx context.Context, artifactPath string) (bool, error) {
	objectPath := b.fullPath(artifactPath)

	_, err := b.client.Bucket(b.bucket).Object(objectPath).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check gs://%s/%s: %w", b.bucket, objectPath, err)
	}

	return true, nil
}

func (b *Backend) fullPath(artifactPath string) string {
	if b.prefix == "" {
		return artifactPath
	}
	return path.Join(b.prefix, artifactPath)
}

func (b *Backend) relPath(name string) string {
	if b.prefix == "" {
		return name
	}
	return strings.TrimPrefix(strings.TrimPrefix(name, b.prefix), "/")
}
