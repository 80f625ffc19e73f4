package api

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	domain "github.com/example/task-tracker/domain/user"
	"github.com/example/task-tracker/modules/auth"
	"github.com/example/task-tracker/modules/tasks"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth  auth.AuthPort
	tasks tasks.TasksPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authAdapter auth.AuthPort, tasksAdapter tasks.TasksPort) *Handlers {
	return &Handlers{
		auth:  authAdapter,
		tasks: tasksAdapter,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	if _, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(MessageResponse{
		Message: "User created successfully",
	})
}

// Login handles user login and returns a signed token with the user's
// public fields.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	resp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.JSON(LoginResponse{
		Token: resp.Token,
		User: LoginUser{
			ID:    resp.User.ID,
			Name:  resp.User.Name,
			Email: resp.User.Email,
		},
	})
}

// ListUsers returns the public fields of every registered user.
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return h.serverError(c, err)
	}
	return c.JSON(users)
}

// ListTasks returns tasks matching the status, category and search query
// parameters.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	views, err := h.tasks.ListTasks(c.UserContext(), tasks.ListTasksRequest{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return h.serverError(c, err)
	}
	return c.JSON(views)
}

// GetTask returns a single task with populated relations.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	view, err := h.tasks.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleTaskError(c, err)
	}
	return c.JSON(view)
}

// CreateTask creates a task assigned by the authenticated user.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, err := h.claims(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid due date",
		})
	}

	view, err := h.tasks.CreateTask(c.UserContext(), tasks.CreateTaskRequest{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Status:       "In Progress",
		DueDate:      dueDate,
		AssignedToID: req.AssignedTo,
		ActorID:      claims.UserID,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}

// UpdateTask applies a partial update. Marking a task Completed records the
// authenticated user as the completer.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, err := h.claims(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	update := tasks.UpdateTaskRequest{
		ID:           c.Params("id"),
		ActorID:      claims.UserID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Status:       req.Status,
		AssignedToID: req.AssignedTo,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
				Message: "Invalid due date",
			})
		}
		update.DueDate = &dueDate
	}

	view, err := h.tasks.UpdateTask(c.UserContext(), update)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.JSON(view)
}

// DeleteTask removes a task along with its attachments.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	if err := h.tasks.DeleteTask(c.UserContext(), c.Params("id")); err != nil {
		return h.handleTaskError(c, err)
	}
	return c.JSON(MessageResponse{Message: "Task deleted successfully"})
}

// AddComment appends a comment and returns the task's full comment list.
func (h *Handlers) AddComment(c *fiber.Ctx) error {
	claims, err := h.claims(c)
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid request body",
		})
	}

	comments, err := h.tasks.AddComment(c.UserContext(), tasks.AddCommentRequest{
		TaskID:  c.Params("id"),
		ActorID: claims.UserID,
		Text:    req.Text,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.JSON(comments)
}

// UploadAttachment stores a multipart file upload against a task and returns
// the new attachment record.
func (h *Handlers) UploadAttachment(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "No file uploaded",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.serverError(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return h.serverError(c, err)
	}

	attachment, err := h.tasks.AddAttachment(c.UserContext(), tasks.AddAttachmentRequest{
		TaskID:      c.Params("id"),
		Name:        fileHeader.Filename,
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.JSON(attachment)
}

// Stats returns task counts per status plus the overdue count.
func (h *Handlers) Stats(c *fiber.Ctx) error {
	stats, err := h.tasks.Stats(c.UserContext())
	if err != nil {
		return h.serverError(c, err)
	}
	return c.JSON(stats)
}

// claims retrieves the authenticated user's claims set by the middleware.
func (h *Handlers) claims(c *fiber.Ctx) (*domain.Claims, error) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Access denied. No token provided.")
	}
	return claims, nil
}

// handleAuthError maps auth service failures to HTTP responses. Errors cross
// the module boundary as messages, so matching is by content.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid credentials"):
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "Invalid credentials",
		})
	case strings.Contains(errStr, "already exists"):
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: "User already exists",
		})
	case strings.Contains(errStr, "required"), strings.Contains(errStr, "invalid email"):
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: capitalize(errStr),
		})
	default:
		return h.serverError(c, err)
	}
}

// handleTaskError maps task and storage service failures to HTTP responses.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
			Message: "Task not found",
		})
	case strings.Contains(errStr, "required"),
		strings.Contains(errStr, "invalid"),
		strings.Contains(errStr, "exceeds"),
		strings.Contains(errStr, "allowed"):
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: capitalize(errStr),
		})
	default:
		return h.serverError(c, err)
	}
}

func (h *Handlers) serverError(c *fiber.Ctx, err error) error {
	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
		Message: "Server error",
	})
}

// parseDueDate accepts RFC 3339 timestamps and bare dates as sent by date
// picker inputs.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
