package task

import (
	"time"

	"github.com/example/task-tracker/domain/user"
)

// Category classifies a task. The set is closed; persistence rejects
// anything else.
type Category string

const (
	CategoryMarketing      Category = "Marketing"
	CategoryTechnical      Category = "Technical"
	CategorySupport        Category = "Support"
	CategoryAdministration Category = "Administration"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMarketing, CategoryTechnical, CategorySupport, CategoryAdministration:
		return true
	}
	return false
}

// Status is the workflow state of a task.
type Status string

const (
	StatusInProgress Status = "In Progress"
	StatusPostponed  Status = "Postponed"
	StatusCompleted  Status = "Completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusPostponed, StatusCompleted:
		return true
	}
	return false
}

// Task is a unit of assigned work. It exclusively owns its attachments and
// comments; user fields are references resolved at the repository boundary.
type Task struct {
	ID            string       `gorm:"primaryKey;size:36"`
	Title         string       `gorm:"size:200;not null"`
	Description   string       `gorm:"not null;type:text"`
	Category      Category     `gorm:"size:32;not null"`
	Status        Status       `gorm:"size:32;not null"`
	DueDate       time.Time    `gorm:"not null"`
	AssignedToID  string       `gorm:"size:36;not null"`
	AssignedByID  string       `gorm:"size:36;not null"`
	CompletedByID *string      `gorm:"size:36"`
	CompletedAt   *time.Time
	AssignedTo    *user.User   `gorm:"foreignKey:AssignedToID"`
	AssignedBy    *user.User   `gorm:"foreignKey:AssignedByID"`
	CompletedBy   *user.User   `gorm:"foreignKey:CompletedByID"`
	Attachments   []Attachment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Comments      []Comment    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Attachment is a file reference owned by a task. Append-only; the backing
// file is removed when the owning task is deleted.
type Attachment struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	TaskID       string `gorm:"size:36;index;not null"`
	Filename     string `gorm:"size:255;not null"`
	OriginalName string `gorm:"size:255;not null"`
	Path         string `gorm:"size:512;not null"`
	UploadedAt   time.Time
}

// TableName returns the table name for the Attachment entity.
func (Attachment) TableName() string {
	return "task_attachments"
}

// Comment is a note on a task. Append-only, never edited or deleted.
type Comment struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	TaskID    string     `gorm:"size:36;index;not null"`
	UserID    string     `gorm:"size:36;not null"`
	User      *user.User `gorm:"foreignKey:UserID"`
	Text      string     `gorm:"not null;type:text"`
	CreatedAt time.Time
}

// TableName returns the table name for the Comment entity.
func (Comment) TableName() string {
	return "task_comments"
}
