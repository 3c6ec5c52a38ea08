// Package storage wraps the Azure Blob Storage account holding the
// pipeline's audio files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/rs/zerolog/log"
)

// ContainerInfo describes one container in the account.
type ContainerInfo struct {
	Name string
}

// BlobInfo describes one blob in a container.
type BlobInfo struct {
	Name string
	Size int64
}

// Service provides blob account operations for the diagnostics.
type Service struct {
	client *azblob.Client

	accountName    string
	accountKey     string
	endpointSuffix string
}

// NewService creates a Service from an account connection string.
func NewService(connectionString string) (*Service, error) {
	if connectionString == "" {
		return nil, errors.New("storage connection string is not configured")
	}

	info, err := parseAccountInfo(connectionString)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}

	return &Service{
		client:         client,
		accountName:    info.name,
		accountKey:     info.key,
		endpointSuffix: info.endpointSuffix,
	}, nil
}

// AccountName returns the storage account name.
func (s *Service) AccountName() string {
	return s.accountName
}

// ListContainers enumerates all containers in the account.
func (s *Service) ListContainers(ctx context.Context) ([]ContainerInfo, error) {
	var out []ContainerInfo
	pager := s.client.NewListContainersPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list containers: %w", err)
		}
		for _, item := range page.ContainerItems {
			if item.Name != nil {
				out = append(out, ContainerInfo{Name: *item.Name})
			}
		}
	}
	return out, nil
}

// ListBlobs enumerates blobs in a container, up to limit (0 for all).
func (s *Service) ListBlobs(ctx context.Context, containerName string, limit int) ([]BlobInfo, error) {
	var out []BlobInfo
	pager := s.client.NewListBlobsFlatPager(containerName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blobs in %s: %w", containerName, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			info := BlobInfo{Name: *item.Name}
			if item.Properties != nil && item.Properties.ContentLength != nil {
				info.Size = *item.Properties.ContentLength
			}
			out = append(out, info)
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// Download fetches a blob's full contents.
func (s *Service) Download(ctx context.Context, containerName, blobName string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download %s/%s: %w", containerName, blobName, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", containerName, blobName, err)
	}

	log.Debug().
		Str("container", containerName).
		Str("blob", blobName).
		Int("bytes", len(data)).
		Msg("Blob downloaded")
	return data, nil
}

// Upload writes a blob, overwriting any existing blob of the same name.
func (s *Service) Upload(ctx context.Context, containerName, blobName string, data []byte) error {
	if _, err := s.client.UploadBuffer(ctx, containerName, blobName, data, nil); err != nil {
		return fmt.Errorf("upload %s/%s: %w", containerName, blobName, err)
	}
	log.Info().
		Str("container", containerName).
		Str("blob", blobName).
		Int("bytes", len(data)).
		Msg("Blob uploaded")
	return nil
}

// BlobSize returns a blob's content length without downloading it.
func (s *Service) BlobSize(ctx context.Context, containerName, blobName string) (int64, error) {
	blobClient := s.client.ServiceClient().NewContainerClient(containerName).NewBlobClient(blobName)
	props, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("get properties of %s/%s: %w", containerName, blobName, err)
	}
	if props.ContentLength == nil {
		return 0, nil
	}
	return *props.ContentLength, nil
}

// accountInfo is the identity material parsed from a connection string.
type accountInfo struct {
	name           string
	key            string
	endpointSuffix string
}

// parseAccountInfo extracts account name, key and endpoint suffix from a
// "DefaultEndpointsProtocol=...;AccountName=...;AccountKey=...;..." string.
func parseAccountInfo(connectionString string) (accountInfo, error) {
	info := accountInfo{endpointSuffix: "core.windows.net"}
	for _, part := range strings.Split(connectionString, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "accountname":
			info.name = value
		case "accountkey":
			info.key = value
		case "endpointsuffix":
			info.endpointSuffix = value
		}
	}
	if info.name == "" || info.key == "" {
		return accountInfo{}, errors.New("connection string is missing AccountName or AccountKey")
	}
	return info, nil
}
