package tasks

import (
	"time"

	"github.com/example/task-tracker/domain/user"
)

// AttachmentView represents an attachment in API responses.
type AttachmentView struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Path         string    `json:"path"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// CommentView represents a comment in API responses.
type CommentView struct {
	User      *user.Info `json:"user"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TaskView represents a task with populated relations.
type TaskView struct {
	ID          string           `json:"_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Status      string           `json:"status"`
	DueDate     time.Time        `json:"dueDate"`
	AssignedTo  *user.Info       `json:"assignedTo"`
	AssignedBy  *user.Info       `json:"assignedBy"`
	CompletedBy *user.Info       `json:"completedBy,omitempty"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	Attachments []AttachmentView `json:"attachments"`
	Comments    []CommentView    `json:"comments"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// CreateTaskRequest represents a task creation request. ActorID is the
// authenticated user creating the task and becomes the assigner.
type CreateTaskRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	DueDate      time.Time `json:"dueDate"`
	AssignedToID string    `json:"assignedToId"`
	ActorID      string    `json:"actorId"`
}

// GetTaskRequest represents a single task lookup request.
type GetTaskRequest struct {
	ID string `json:"id"`
}

// ListTasksRequest represents a filtered task listing request.
type ListTasksRequest struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	Search   string `json:"search"`
}

// ListTasksResponse represents a task listing response.
type ListTasksResponse struct {
	Tasks []TaskView `json:"tasks"`
}

// UpdateTaskRequest represents a partial task update. Nil fields are left
// unchanged.
type UpdateTaskRequest struct {
	ID           string     `json:"id"`
	ActorID      string     `json:"actorId"`
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Status       *string    `json:"status,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	AssignedToID *string    `json:"assignedToId,omitempty"`
}

// DeleteTaskRequest represents a task deletion request.
type DeleteTaskRequest struct {
	ID string `json:"id"`
}

// DeleteTaskResponse represents a task deletion response.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// AddCommentRequest represents a comment creation request.
type AddCommentRequest struct {
	TaskID  string `json:"taskId"`
	ActorID string `json:"actorId"`
	Text    string `json:"text"`
}

// AddCommentResponse carries the task's full comment list after the insert.
type AddCommentResponse struct {
	Comments []CommentView `json:"comments"`
}

// AddAttachmentRequest represents an attachment upload request.
type AddAttachmentRequest struct {
	TaskID      string `json:"taskId"`
	Name        string `json:"name"`
	Data        []byte `json:"data"`
	ContentType string `json:"contentType"`
}

// StatsRequest represents a dashboard statistics request.
type StatsRequest struct{}

// StatsResponse represents task counts by status. A task can be counted both
// under its status and as overdue.
type StatsResponse struct {
	InProgress int64 `json:"In Progress"`
	Postponed  int64 `json:"Postponed"`
	Completed  int64 `json:"Completed"`
	Overdue    int64 `json:"Overdue"`
}
