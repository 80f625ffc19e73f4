package tasks

import (
	"context"
	"errors"
	"log"
	"time"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/domain/user"
	"github.com/example/task-tracker/modules/storage"
)

// ErrMissingComment is returned when a comment has no text.
var ErrMissingComment = errors.New("comment text is required")

// TaskService implements task management business logic. Attachment blobs are
// delegated to the storage module through its port.
type TaskService struct {
	repo    *TaskRepository
	storage storage.StoragePort
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *TaskRepository, store storage.StoragePort) *TaskService {
	return &TaskService{
		repo:    repo,
		storage: store,
	}
}

// Create persists a new task. The acting user is recorded as the assigner
// regardless of any client-supplied value.
func (s *TaskService) Create(req CreateTaskRequest) (*TaskView, error) {
	t := domain.Task{
		Title:        req.Title,
		Description:  req.Description,
		Category:     domain.Category(req.Category),
		Status:       domain.Status(req.Status),
		DueDate:      req.DueDate,
		AssignedToID: req.AssignedToID,
		AssignedByID: req.ActorID,
	}

	if err := s.repo.Insert(&t); err != nil {
		return nil, err
	}

	return s.viewByID(t.ID)
}

// Get returns a single task with populated relations.
func (s *TaskService) Get(id string) (*TaskView, error) {
	return s.viewByID(id)
}

// List returns tasks matching the filter, newest first.
func (s *TaskService) List(filter Filter) ([]TaskView, error) {
	found, err := s.repo.Find(filter)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(found))
	for i := range found {
		views = append(views, viewFromTask(&found[i]))
	}
	return views, nil
}

// Update applies a partial update. Setting status to Completed stamps the
// acting user and the current time as the completion record.
func (s *TaskService) Update(req UpdateTaskRequest) (*TaskView, error) {
	fields := map[string]any{}

	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		if !domain.Category(*req.Category).Valid() {
			return nil, ErrInvalidCategory
		}
		fields["category"] = *req.Category
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		fields["status"] = *req.Status
		if status == domain.StatusCompleted {
			fields["completed_by_id"] = req.ActorID
			fields["completed_at"] = time.Now()
		}
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}
	if req.AssignedToID != nil {
		fields["assigned_to_id"] = *req.AssignedToID
	}

	if len(fields) == 0 {
		return s.viewByID(req.ID)
	}

	if err := s.repo.UpdateFields(req.ID, fields); err != nil {
		return nil, err
	}

	return s.viewByID(req.ID)
}

// Delete removes a task, its children, and its attachment files. File
// removal is best-effort; a failed unlink does not fail the deletion.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	t, err := s.repo.DeleteByID(id)
	if err != nil {
		return err
	}

	for _, a := range t.Attachments {
		if err := s.storage.DeleteFile(ctx, a.Path); err != nil {
			log.Printf("[tasks] Failed to remove attachment file %s: %v", a.Path, err)
		}
	}
	return nil
}

// AddComment appends a comment and returns the task's full comment list.
func (s *TaskService) AddComment(req AddCommentRequest) ([]CommentView, error) {
	if req.Text == "" {
		return nil, ErrMissingComment
	}

	if _, err := s.repo.FindByID(req.TaskID); err != nil {
		return nil, err
	}

	comment := domain.Comment{
		TaskID: req.TaskID,
		UserID: req.ActorID,
		Text:   req.Text,
	}
	if err := s.repo.AppendComment(&comment); err != nil {
		return nil, err
	}

	t, err := s.repo.FindByID(req.TaskID)
	if err != nil {
		return nil, err
	}
	return viewFromTask(t).Comments, nil
}

// AddAttachment validates and stores an uploaded file, then records it on
// the task and returns the new record. The stored file is removed again if
// the record cannot be created.
func (s *TaskService) AddAttachment(ctx context.Context, req AddAttachmentRequest) (*AttachmentView, error) {
	if _, err := s.repo.FindByID(req.TaskID); err != nil {
		return nil, err
	}

	stored, err := s.storage.StoreFile(ctx, req.Name, req.Data, req.ContentType)
	if err != nil {
		return nil, err
	}

	attachment := domain.Attachment{
		TaskID:       req.TaskID,
		Filename:     stored.Filename,
		OriginalName: req.Name,
		Path:         stored.Path,
		UploadedAt:   stored.UploadedAt,
	}
	if err := s.repo.AppendAttachment(&attachment); err != nil {
		if delErr := s.storage.DeleteFile(ctx, stored.Path); delErr != nil {
			log.Printf("[tasks] Failed to clean up orphaned file %s: %v", stored.Path, delErr)
		}
		return nil, err
	}

	return &AttachmentView{
		Filename:     attachment.Filename,
		OriginalName: attachment.OriginalName,
		Path:         attachment.Path,
		UploadedAt:   attachment.UploadedAt,
	}, nil
}

// Stats returns task counts per status plus the overdue count. Overdue tasks
// are counted twice, once under their status and once as overdue.
func (s *TaskService) Stats() (*StatsResponse, error) {
	inProgress, err := s.repo.CountByStatus(domain.StatusInProgress)
	if err != nil {
		return nil, err
	}
	postponed, err := s.repo.CountByStatus(domain.StatusPostponed)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.CountByStatus(domain.StatusCompleted)
	if err != nil {
		return nil, err
	}
	overdue, err := s.repo.CountOverdue(time.Now())
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		InProgress: inProgress,
		Postponed:  postponed,
		Completed:  completed,
		Overdue:    overdue,
	}, nil
}

func (s *TaskService) viewByID(id string) (*TaskView, error) {
	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	view := viewFromTask(t)
	return &view, nil
}

// viewFromTask flattens a task and its preloaded relations into a response
// view.
func viewFromTask(t *domain.Task) TaskView {
	view := TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		AssignedTo:  userInfo(t.AssignedTo),
		AssignedBy:  userInfo(t.AssignedBy),
		CompletedBy: userInfo(t.CompletedBy),
		CompletedAt: t.CompletedAt,
		Attachments: make([]AttachmentView, 0, len(t.Attachments)),
		Comments:    make([]CommentView, 0, len(t.Comments)),
		CreatedAt:   t.CreatedAt,
	}

	for _, a := range t.Attachments {
		view.Attachments = append(view.Attachments, AttachmentView{
			Filename:     a.Filename,
			OriginalName: a.OriginalName,
			Path:         a.Path,
			UploadedAt:   a.UploadedAt,
		})
	}
	for _, c := range t.Comments {
		view.Comments = append(view.Comments, CommentView{
			User:      userInfo(c.User),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return view
}

func userInfo(u *user.User) *user.Info {
	if u == nil {
		return nil
	}
	return &user.Info{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
