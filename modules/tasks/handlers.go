package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// RegisterServices registers request-reply services in the service container.
func (m *TasksModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"create-task", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "create-task", json.Unmarshal, json.Marshal, m.handleCreateTask)
		}},
		{"get-task", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get-task", json.Unmarshal, json.Marshal, m.handleGetTask)
		}},
		{"list-tasks", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list-tasks", json.Unmarshal, json.Marshal, m.handleListTasks)
		}},
		{"update-task", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "update-task", json.Unmarshal, json.Marshal, m.handleUpdateTask)
		}},
		{"delete-task", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "delete-task", json.Unmarshal, json.Marshal, m.handleDeleteTask)
		}},
		{"add-comment", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "add-comment", json.Unmarshal, json.Marshal, m.handleAddComment)
		}},
		{"add-attachment", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "add-attachment", json.Unmarshal, json.Marshal, m.handleAddAttachment)
		}},
		{"task-stats", func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "task-stats", json.Unmarshal, json.Marshal, m.handleStats)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[tasks] Registered %d services", len(services))
	return nil
}

func (m *TasksModule) handleCreateTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskView, error) {
	view, err := m.service.Create(req)
	if err != nil {
		return TaskView{}, err
	}
	return *view, nil
}

func (m *TasksModule) handleGetTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskView, error) {
	view, err := m.service.Get(req.ID)
	if err != nil {
		return TaskView{}, err
	}
	return *view, nil
}

func (m *TasksModule) handleListTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	views, err := m.service.List(Filter{
		Status:   req.Status,
		Category: req.Category,
		Search:   req.Search,
	})
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: views}, nil
}

func (m *TasksModule) handleUpdateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskView, error) {
	view, err := m.service.Update(req)
	if err != nil {
		return TaskView{}, err
	}
	return *view, nil
}

func (m *TasksModule) handleDeleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteTaskResponse{}, err
	}
	return DeleteTaskResponse{Deleted: true}, nil
}

func (m *TasksModule) handleAddComment(_ context.Context, req AddCommentRequest, _ *mono.Msg) (AddCommentResponse, error) {
	comments, err := m.service.AddComment(req)
	if err != nil {
		return AddCommentResponse{}, err
	}
	return AddCommentResponse{Comments: comments}, nil
}

func (m *TasksModule) handleAddAttachment(ctx context.Context, req AddAttachmentRequest, _ *mono.Msg) (AttachmentView, error) {
	attachment, err := m.service.AddAttachment(ctx, req)
	if err != nil {
		return AttachmentView{}, err
	}
	return *attachment, nil
}

func (m *TasksModule) handleStats(_ context.Context, _ StatsRequest, _ *mono.Msg) (StatsResponse, error) {
	stats, err := m.service.Stats()
	if err != nil {
		return StatsResponse{}, err
	}
	return *stats, nil
}
