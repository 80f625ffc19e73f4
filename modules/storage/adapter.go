package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// StoragePort defines the interface for attachment storage operations from
// other modules.
type StoragePort interface {
	StoreFile(ctx context.Context, name string, data []byte, contentType string) (*StoreFileResponse, error)
	DeleteFile(ctx context.Context, path string) error
}

// storageAdapter wraps ServiceContainer for cross-module storage calls.
type storageAdapter struct {
	container mono.ServiceContainer
}

// NewStorageAdapter creates a new adapter for storage services.
func NewStorageAdapter(container mono.ServiceContainer) StoragePort {
	if container == nil {
		panic("storage adapter requires non-nil ServiceContainer")
	}
	return &storageAdapter{container: container}
}

// StoreFile persists a file via the store-file service.
func (a *storageAdapter) StoreFile(ctx context.Context, name string, data []byte, contentType string) (*StoreFileResponse, error) {
	req := StoreFileRequest{
		Name:        name,
		Data:        data,
		ContentType: contentType,
	}
	var resp StoreFileResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "store-file", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}

	return &resp, nil
}

// DeleteFile removes a file via the delete-file service.
func (a *storageAdapter) DeleteFile(ctx context.Context, path string) error {
	req := DeleteFileRequest{Path: path}
	var resp DeleteFileResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete-file", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return fmt.Errorf("delete-file service call failed: %w", err)
	}

	return nil
}
