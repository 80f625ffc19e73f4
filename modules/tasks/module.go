package tasks

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/modules/storage"
)

// TasksModule provides task management services backed by SQLite. It shares
// the database file with the auth module so task queries can join user rows.
type TasksModule struct {
	db      *gorm.DB
	service *TaskService
	dbPath  string
	deps    mono.ServiceContainer
}

// Compile-time interface checks.
var _ mono.Module = (*TasksModule)(nil)
var _ mono.ServiceProviderModule = (*TasksModule)(nil)
var _ mono.DependentModule = (*TasksModule)(nil)
var _ mono.HealthCheckableModule = (*TasksModule)(nil)

// NewModule creates a new TasksModule.
func NewModule() *TasksModule {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "task_tracker.db"
	}
	return &TasksModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TasksModule) Name() string {
	return "tasks"
}

// Dependencies returns the modules this module depends on.
func (m *TasksModule) Dependencies() []string {
	return []string{"storage"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *TasksModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "storage" {
		m.deps = container
	}
}

// Start opens the database and wires the service.
func (m *TasksModule) Start(_ context.Context) error {
	if m.deps == nil {
		return fmt.Errorf("storage dependency not set")
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Task{}, &domain.Attachment{}, &domain.Comment{}); err != nil {
		return fmt.Errorf("failed to migrate task schema: %w", err)
	}

	m.db = db
	m.service = NewTaskService(
		NewTaskRepository(db),
		storage.NewStorageAdapter(m.deps),
	)

	log.Printf("[tasks] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *TasksModule) Stop(_ context.Context) error {
	if m.db != nil {
		if sqlDB, err := m.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[tasks] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TasksModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database unreachable",
		}
	}

	var count int64
	m.db.Model(&domain.Task{}).Count(&count)

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"tasks": count,
		},
	}
}
