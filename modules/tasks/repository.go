package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/example/task-tracker/domain/task"
)

// ErrTaskNotFound is returned when a task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// ErrMissingFields is returned when required task fields are empty.
var ErrMissingFields = errors.New("title, description, category, status, assignedTo and dueDate are required")

// ErrInvalidCategory is returned for an unknown category value.
var ErrInvalidCategory = errors.New("invalid category")

// ErrInvalidStatus is returned for an unknown status value.
var ErrInvalidStatus = errors.New("invalid status")

// Filter narrows task listings. Empty or "all" values match everything.
type Filter struct {
	Status   string
	Category string
	Search   string
}

// TaskRepository handles task persistence with GORM.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// preloaded returns a query with every relation a task view needs.
func (r *TaskRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("AssignedTo").
		Preload("AssignedBy").
		Preload("CompletedBy").
		Preload("Attachments").
		Preload("Comments").
		Preload("Comments.User")
}

// Find returns tasks matching the filter, newest first.
func (r *TaskRepository) Find(filter Filter) ([]domain.Task, error) {
	query := r.preloaded().Order("created_at DESC")

	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var found []domain.Task
	if err := query.Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return found, nil
}

// FindByID retrieves a task with all relations populated.
func (r *TaskRepository) FindByID(id string) (*domain.Task, error) {
	var t domain.Task
	if err := r.preloaded().Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// Insert validates and persists a new task, assigning its ID.
func (r *TaskRepository) Insert(t *domain.Task) error {
	if t.Title == "" || t.Description == "" || t.Category == "" ||
		t.Status == "" || t.AssignedToID == "" || t.DueDate.IsZero() {
		return ErrMissingFields
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}

	t.ID = uuid.New().String()
	t.CreatedAt = time.Now()

	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to an existing task.
func (r *TaskRepository) UpdateFields(id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := r.db.Model(&domain.Task{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteByID removes a task and its comments and attachments, returning the
// task as it was before deletion.
func (r *TaskRepository) DeleteByID(id string) (*domain.Task, error) {
	t, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&domain.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Task{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return t, nil
}

// AppendComment adds a comment to a task.
func (r *TaskRepository) AppendComment(c *domain.Comment) error {
	c.CreatedAt = time.Now()
	if err := r.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// AppendAttachment adds an attachment record to a task.
func (r *TaskRepository) AppendAttachment(a *domain.Attachment) error {
	if err := r.db.Create(a).Error; err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

// CountByStatus returns the number of tasks with the given status.
func (r *TaskRepository) CountByStatus(status domain.Status) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Task{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// CountOverdue returns the number of unfinished tasks past their due date.
func (r *TaskRepository) CountOverdue(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Task{}).
		Where("due_date < ? AND status != ?", now, domain.StatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue tasks: %w", err)
	}
	return count, nil
}
