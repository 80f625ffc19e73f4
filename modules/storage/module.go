package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// StorageModule provides filesystem-backed attachment storage.
type StorageModule struct {
	store *FileStore
	dir   string
}

// Compile-time interface checks.
var _ mono.Module = (*StorageModule)(nil)
var _ mono.ServiceProviderModule = (*StorageModule)(nil)
var _ mono.HealthCheckableModule = (*StorageModule)(nil)

// NewModule creates a new StorageModule.
func NewModule() *StorageModule {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return &StorageModule{
		dir: dir,
	}
}

// Name returns the module name.
func (m *StorageModule) Name() string {
	return "storage"
}

// Start initializes the file store.
func (m *StorageModule) Start(_ context.Context) error {
	store, err := NewFileStore(m.dir)
	if err != nil {
		return err
	}
	m.store = store

	log.Printf("[storage] Module started (directory: %s)", m.dir)
	return nil
}

// Stop shuts down the module.
func (m *StorageModule) Stop(_ context.Context) error {
	log.Println("[storage] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *StorageModule) Health(_ context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}

	if _, err := os.Stat(m.dir); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("upload directory unavailable: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"directory": m.dir,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *StorageModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "store-file", json.Unmarshal, json.Marshal, m.handleStoreFile,
	); err != nil {
		return fmt.Errorf("failed to register store-file service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-file", json.Unmarshal, json.Marshal, m.handleDeleteFile,
	); err != nil {
		return fmt.Errorf("failed to register delete-file service: %w", err)
	}

	log.Printf("[storage] Registered services: store-file, delete-file")
	return nil
}

// handleStoreFile handles the store-file service request.
func (m *StorageModule) handleStoreFile(_ context.Context, req StoreFileRequest, _ *mono.Msg) (StoreFileResponse, error) {
	stored, err := m.store.Store(req.Data, req.Name, req.ContentType)
	if err != nil {
		return StoreFileResponse{}, err
	}

	return StoreFileResponse{
		Filename:   stored.Filename,
		Path:       stored.Path,
		UploadedAt: stored.UploadedAt,
	}, nil
}

// handleDeleteFile handles the delete-file service request.
func (m *StorageModule) handleDeleteFile(_ context.Context, req DeleteFileRequest, _ *mono.Msg) (DeleteFileResponse, error) {
	if err := m.store.Delete(req.Path); err != nil {
		return DeleteFileResponse{Deleted: false}, err
	}

	return DeleteFileResponse{Deleted: true}, nil
}
