package tasks

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/domain/user"
)

func setupTestRepo(t *testing.T) (*TaskRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(&user.User{}, &domain.Task{}, &domain.Attachment{}, &domain.Comment{})
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return NewTaskRepository(db), db
}

func seedUser(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()

	u := user.User{
		ID:           id,
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func validTask(assignedTo, assignedBy string) *domain.Task {
	return &domain.Task{
		Title:        "Prepare launch checklist",
		Description:  "Collect all pre-launch action items",
		Category:     domain.CategoryMarketing,
		Status:       domain.StatusInProgress,
		DueDate:      time.Now().Add(72 * time.Hour),
		AssignedToID: assignedTo,
		AssignedByID: assignedBy,
	}
}

func TestTaskRepository_Insert(t *testing.T) {
	repo, db := setupTestRepo(t)
	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")

	task := validTask("u1", "u2")
	if err := repo.Insert(task); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if task.ID == "" {
		t.Error("Insert() did not assign an ID")
	}

	found, err := repo.FindByID(task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.AssignedTo == nil || found.AssignedTo.Name != "alice" {
		t.Error("FindByID() did not populate AssignedTo")
	}
	if found.AssignedBy == nil || found.AssignedBy.Name != "bob" {
		t.Error("FindByID() did not populate AssignedBy")
	}
}

func TestTaskRepository_Insert_Validation(t *testing.T) {
	repo, db := setupTestRepo(t)
	seedUser(t, db, "u1", "alice")

	tests := []struct {
		name    string
		mutate  func(*domain.Task)
		wantErr error
	}{
		{
			name:    "missing title",
			mutate:  func(task *domain.Task) { task.Title = "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing assignee",
			mutate:  func(task *domain.Task) { task.AssignedToID = "" },
			wantErr: ErrMissingFields,
		},
		{
			name:    "zero due date",
			mutate:  func(task *domain.Task) { task.DueDate = time.Time{} },
			wantErr: ErrMissingFields,
		},
		{
			name:    "unknown category",
			mutate:  func(task *domain.Task) { task.Category = "Engineering" },
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "unknown status",
			mutate:  func(task *domain.Task) { task.Status = "Done" },
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask("u1", "u1")
			tt.mutate(task)
			if err := repo.Insert(task); !errors.Is(err, tt.wantErr) {
				t.Errorf("Insert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskRepository_Find_Filters(t *testing.T) {
	repo, db := setupTestRepo(t)
	seedUser(t, db, "u1", "alice")

	seed := []struct {
		title    string
		category domain.Category
		status   domain.Status
	}{
		{"Draft newsletter copy", domain.CategoryMarketing, domain.StatusInProgress},
		{"Patch staging server", domain.CategoryTechnical, domain.StatusInProgress},
		{"Archive old tickets", domain.CategorySupport, domain.StatusCompleted},
	}
	for _, s := range seed {
		task := validTask("u1", "u1")
		task.Title = s.title
		task.Category = s.category
		task.Status = s.status
		if err := repo.Insert(task); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"no filter", Filter{}, 3},
		{"all sentinel values", Filter{Status: "all", Category: "all"}, 3},
		{"by status", Filter{Status: "In Progress"}, 2},
		{"by category", Filter{Category: "Technical"}, 1},
		{"status and category", Filter{Status: "In Progress", Category: "Marketing"}, 1},
		{"search case-insensitive", Filter{Search: "STAGING"}, 1},
		{"search matches description", Filter{Search: "pre-launch"}, 3},
		{"no matches", Filter{Search: "nonexistent"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Find(tt.filter)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if len(found) != tt.want {
				t.Errorf("Find() returned %d tasks, want %d", len(found), tt.want)
			}
		})
	}
}

func TestTaskRepository_Find_Ordering(t *testing.T) {
	repo, db := setupTestRepo(t)
	seedUser(t, db, "u1", "alice")

	first := validTask("u1", "u1")
	first.Title = "older"
	if err := repo.Insert(first); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	// Force distinct creation timestamps.
	db.Model(first).Update("created_at", time.Now().Add(-time.Hour))

	second := validTask("u1", "u1")
	second.Title = "newer"
	if err := repo.Insert(second); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	found, err := repo.Find(Filter{})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(found) != 2 || found[0].Title != "newer" {
		t.Errorf("Find() order = [%s, ...], want newest first", found[0].Title)
	}
}

func TestTaskRepository_FindByID_NotFound(t *testing.T) {
	repo, _ := setupTestRepo(t)

	if _, err := repo.FindByID("missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("FindByID() error = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskRepository_UpdateFields(t *testing.T) {
	repo, db := setupTestRepo(t)
	seedUser(t, db, "u1", "alice")

	task := validTask("u1", "u1")
	if err := repo.Insert(task); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	err := repo.UpdateFields(task.ID, map[string]any{"title": "Updated title"})
	if err != nil {
		t.Fatalf("UpdateFields() error = %v", err)
	}

	found, err := repo.FindByID(task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != "Updated title" {
		t.Errorf("title = %q, want %q", found.Title, "Updated title")
	}

	err = repo.UpdateFields("missing", map[string]any{"title": "x"})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("UpdateFields() on missing task error = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskRepository_DeleteByID(t *testing.T) {
	repo, db := setupTestRepo(t)
	seedUser(t, db, "u1", "alice")

	task := validTask("u1", "u1")
	if err := repo.Insert(task); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := repo.AppendComment(&domain.Comment{TaskID: task.ID, UserID: "u1", Text: "note"}); err != nil {
		t.Fatalf("AppendComment() error = %v", err)
	}

	deleted, err := repo.DeleteByID(task.ID)
	if err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	if len(deleted.Comments) != 1 {
		t.Errorf("DeleteByID() returned %d comments, want 1", len(deleted.Comments))
	}

	if _, err := repo.FindByID(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Error("task still exists after delete")
	}

	var count int64
	db.Model(&domain.Comment{}).Where("task_id = ?", task.ID).Count(&count)
	if count != 0 {
		t.Errorf("comments remaining after delete = %d, want 0", count)
	}

	if _, err := repo.DeleteByID("missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("DeleteByID() on missing task error = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskRepository_Counts(t *testing.T) {
	repo, db := setupTestRepo(t)
	seedUser(t, db, "u1", "alice")

	seed := []struct {
		status  domain.Status
		dueDate time.Time
	}{
		{domain.StatusInProgress, time.Now().Add(24 * time.Hour)},
		{domain.StatusInProgress, time.Now().Add(24 * time.Hour)},
		{domain.StatusInProgress, time.Now().Add(-24 * time.Hour)},
		{domain.StatusPostponed, time.Now().Add(24 * time.Hour)},
		{domain.StatusPostponed, time.Now().Add(24 * time.Hour)},
		{domain.StatusCompleted, time.Now().Add(-24 * time.Hour)},
	}
	for _, s := range seed {
		task := validTask("u1", "u1")
		task.Status = s.status
		task.DueDate = s.dueDate
		if err := repo.Insert(task); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	inProgress, _ := repo.CountByStatus(domain.StatusInProgress)
	if inProgress != 3 {
		t.Errorf("CountByStatus(InProgress) = %d, want 3", inProgress)
	}

	overdue, err := repo.CountOverdue(time.Now())
	if err != nil {
		t.Fatalf("CountOverdue() error = %v", err)
	}
	// The past-due completed task must not count.
	if overdue != 1 {
		t.Errorf("CountOverdue() = %d, want 1", overdue)
	}
}
