// Package azblob implements an Azure Blob Storage artifact store.
package azblob

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/reifyd/scriptify/pkg/store"
)

func init() {
	store.Register("azblob", NewBackend)
}

// Backend implements the store backend interface for Azure Blob Storage.
type Backend struct {
	client        *azblob.Client
	containerName string
	prefix        string
}

// NewBackend creates a new Azure Blob Storage backend.
func NewBackend(cfg map[string]string) (store.Backend, error) {
	storageAccount, ok := cfg["storage_account_name"]
	if !ok || storageAccount == "" {
		return nil, fmt.Errorf("azblob backend requires 'storage_account_name' configuration")
	}

	containerName, ok := cfg["container_name"]
	if !ok || containerName == "" {
		return nil, fmt.Errorf("azblob backend requires 'container_name' configuration")
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", storageAccount)

	// Support custom endpoint (for Azurite emulator)
	if endpoint := cfg["endpoint"]; endpoint != "" {
		serviceURL = endpoint
	}

	client, err := newClient(cfg, storageAccount, serviceURL)
	if err != nil {
		return nil, err
	}

	return &Backend{
		client:        client,
		containerName: containerName,
		prefix:        cfg["key"],
	}, nil
}

// newClient builds an azblob client using whichever credential the
// configuration supplies: shared key, SAS token, connection string, or
// the default Azure identity chain.
func newClient(cfg map[string]string, storageAccount, serviceURL string) (*azblob.Client, error) {
	if accessKey := cfg["access_key"]; accessKey != "" {
		cred, err := azblob.NewSharedKeyCredential(storageAccount, accessKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure client with shared key: %w", err)
		}
		return client, nil
	}

	if sasToken := cfg["sas_token"]; sasToken != "" {
		sep := "?"
		if strings.Contains(serviceURL, "?") {
			sep = "&"
		}
		client, err := azblob.NewClientWithNoCredential(serviceURL+sep+strings.TrimPrefix(sasToken, "?"), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure client with SAS token: %w", err)
		}
		return client, nil
	}

	if connectionString := cfg["connection_string"]; connectionString != "" {
		client, err := azblob.NewClientFromConnectionString(connectionString, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure client from connection string: %w", err)
		}
		return client, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create default Azure credential: %w", err)
	}
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure client: %w", err)
	}
	return client, nil
}

func (b *Backend) Type() string {
	return "azblob"
}

func (b *Backend) Read(ctx context.Context, artifactPath string) (io.ReadCloser, error) {
	blobPath := b.fullPath(artifactPath)

	resp, err := b.client.DownloadStream(ctx, b.containerName, blobPath, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read azure://%s/%s: %w", b.containerName, blobPath, err)
	}

	return resp.Body, nil
}

func (b *Backend) Write(ctx context.Context, artifactPath string, data io.Reader) error {
	blobPath := b.fullPath(artifactPath)

	_, err := b.client.UploadStream(ctx, b.containerName, blobPath, data, nil)
	if err != nil {
		return fmt.Errorf("failed to write azure://%s/%s: %w", b.containerName, blobPath, err)
	}

	return nil
}

func (b *Backend) Delete(ctx context.Context, artifactPath string) error {
	blobPath := b.fullPath(artifactPath)

	_, err := b.client.DeleteBlob(ctx, b.containerName, blobPath, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("failed to delete azure://%s/%s: %w", b.containerName, blobPath, err)
	}

	return nil
}

func (b *Backend) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := b.fullPath(prefix)

	var paths []string
	pager := b.client.NewListBlobsFlatPager(b.containerName, &azblob.ListBlobsFlatOptions{
		Prefix: &fullPrefix,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list azure://%s/%s: %w", b.containerName, fullPrefix, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			paths = append(paths, b.relPath(*item.Name))
		}
	}

	return paths, nil
}

func (b *Backend) Exists(ctx context.Context, artifactPath string) (bool, error) {
	blobPath := b.fullPath(artifactPath)

	_, err := b.client.ServiceClient().
		NewContainerClient(b.containerName).
		NewBlobClient(blobPath).
		GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check azure://%s/%s: %w", b.containerName, blobPath, err)
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
