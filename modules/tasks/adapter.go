package tasks

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TasksPort defines the interface for task operations from other modules.
type TasksPort interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskView, error)
	GetTask(ctx context.Context, id string) (*TaskView, error)
	ListTasks(ctx context.Context, req ListTasksRequest) ([]TaskView, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*TaskView, error)
	DeleteTask(ctx context.Context, id string) error
	AddComment(ctx context.Context, req AddCommentRequest) ([]CommentView, error)
	AddAttachment(ctx context.Context, req AddAttachmentRequest) (*AttachmentView, error)
	Stats(ctx context.Context) (*StatsResponse, error)
}

// tasksAdapter wraps ServiceContainer for cross-module task calls.
type tasksAdapter struct {
	container mono.ServiceContainer
}

// NewTasksAdapter creates a new adapter for task services.
func NewTasksAdapter(container mono.ServiceContainer) TasksPort {
	if container == nil {
		panic("tasks adapter requires non-nil ServiceContainer")
	}
	return &tasksAdapter{container: container}
}

func call[T1 any, T2 any](ctx context.Context, a *tasksAdapter, service string, req T1, resp *T2) error {
	return helper.CallRequestReplyService(
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, resp,
	)
}

func (a *tasksAdapter) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskView, error) {
	var resp TaskView
	if err := call(ctx, a, "create-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *tasksAdapter) GetTask(ctx context.Context, id string) (*TaskView, error) {
	req := GetTaskRequest{ID: id}
	var resp TaskView
	if err := call(ctx, a, "get-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *tasksAdapter) ListTasks(ctx context.Context, req ListTasksRequest) ([]TaskView, error) {
	var resp ListTasksResponse
	if err := call(ctx, a, "list-tasks", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (a *tasksAdapter) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*TaskView, error) {
	var resp TaskView
	if err := call(ctx, a, "update-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *tasksAdapter) DeleteTask(ctx context.Context, id string) error {
	req := DeleteTaskRequest{ID: id}
	var resp DeleteTaskResponse
	return call(ctx, a, "delete-task", &req, &resp)
}

func (a *tasksAdapter) AddComment(ctx context.Context, req AddCommentRequest) ([]CommentView, error) {
	var resp AddCommentResponse
	if err := call(ctx, a, "add-comment", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

func (a *tasksAdapter) AddAttachment(ctx context.Context, req AddAttachmentRequest) (*AttachmentView, error) {
	var resp AttachmentView
	if err := call(ctx, a, "add-attachment", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *tasksAdapter) Stats(ctx context.Context) (*StatsResponse, error) {
	req := StatsRequest{}
	var resp StatsResponse
	if err := call(ctx, a, "task-stats", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
