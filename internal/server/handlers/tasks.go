package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/taskly/internal/models"
	"github.com/avolkov/taskly/internal/server/storage"
	"github.com/avolkov/taskly/internal/validation"
	"github.com/avolkov/taskly/pkg/api"
)

// TaskHandler implements ownership-scoped task CRUD. The owner is
// always the verified identity from the request context, never a value
// from the payload.
type TaskHandler struct {
	logger *slog.Logger
	tasks  storage.TaskStorage
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(logger *slog.Logger, tasks storage.TaskStorage) *TaskHandler {
	return &TaskHandler{
		logger: logger,
		tasks:  tasks,
	}
}

// List handles GET /tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		writeMessage(h.logger, w, false, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := h.tasks.ListTasks(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tasks", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	data := make([]api.Task, 0, len(tasks))
	for _, task := range tasks {
		data = append(data, toAPITask(task))
	}

	resp := api.TaskListResponse{
		Success: true,
		Message: "Tasks retrieved successfully",
		Data:    data,
	}

	writeJSON(h.logger, w, resp, http.StatusOK)
}

// Create handles POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		writeMessage(h.logger, w, false, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create task request", slog.Any("error", err))
		writeMessage(h.logger, w, false, "invalid request body", http.StatusBadRequest)
		return
	}

	errs := validation.Errors{}
	if err := validation.ValidateTitle(req.Title); err != nil {
		errs.Add("title", err.Error())
	}
	if err := validation.ValidateDescription(req.Description); err != nil {
		errs.Add("description", err.Error())
	}
	if err := validation.ValidateDate(req.Date); err != nil {
		errs.Add("date", err.Error())
	}
	if err := validation.ValidatePriority(req.Priority); err != nil {
		errs.Add("priority", err.Error())
	}
	if !errs.Empty() {
		writeValidationErrors(h.logger, w, errs)
		return
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.tasks.CreateTask(ctx, task); err != nil {
		h.logger.ErrorContext(ctx, "failed to create task", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "task created",
		slog.String("task_id", task.ID),
		slog.String("user_id", userID))

	writeTask(h.logger, w, task, "Task created successfully", http.StatusCreated)
}

// Get handles GET /tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		writeMessage(h.logger, w, false, "Unauthorized", http.StatusUnauthorized)
		return
	}

	task, err := h.tasks.GetTask(ctx, userID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			writeMessage(h.logger, w, false, "Task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get task", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	writeTask(h.logger, w, task, "Task retrieved successfully", http.StatusOK)
}

// Update handles PUT /tasks/{id}. The ownership check runs first; only
// then are the present fields validated and merged. Task id and owner
// are immutable regardless of the payload.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		writeMessage(h.logger, w, false, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode update task request", slog.Any("error", err))
		writeMessage(h.logger, w, false, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.tasks.GetTask(ctx, userID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			writeMessage(h.logger, w, false, "Task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get task", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	errs := validation.Errors{}
	if req.Title != nil {
		if err := validation.ValidateTitle(*req.Title); err != nil {
			errs.Add("title", err.Error())
		}
	}
	if req.Description != nil {
		if err := validation.ValidateDescription(*req.Description); err != nil {
			errs.Add("description", err.Error())
		}
	}
	if req.Date != nil {
		if err := validation.ValidateDate(*req.Date); err != nil {
			errs.Add("date", err.Error())
		}
	}
	if req.Priority != nil {
		if err := validation.ValidatePriority(*req.Priority); err != nil {
			errs.Add("priority", err.Error())
		}
	}
	if !errs.Empty() {
		writeValidationErrors(h.logger, w, errs)
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Date != nil {
		task.Date = *req.Date
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	task.UpdatedAt = time.Now()

	if err := h.tasks.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			// Deleted between the lookup and the write
			writeMessage(h.logger, w, false, "Task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update task", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "task updated",
		slog.String("task_id", task.ID),
		slog.String("user_id", userID))

	writeTask(h.logger, w, task, "Task updated successfully", http.StatusOK)
}

// Delete handles DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		writeMessage(h.logger, w, false, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.tasks.DeleteTask(ctx, userID, r.PathValue("id")); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			writeMessage(h.logger, w, false, "Task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete task", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "task deleted",
		slog.String("task_id", r.PathValue("id")),
		slog.String("user_id", userID))

	writeMessage(h.logger, w, true, "Task deleted successfully", http.StatusOK)
}

// toAPITask converts a stored task to its wire representation
func toAPITask(task *models.Task) api.Task {
	return api.Task{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Date:        task.Date,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// writeTask sends a single-task envelope
func writeTask(logger *slog.Logger, w http.ResponseWriter, task *models.Task, message string, statusCode int) {
	apiTask := toAPITask(task)
	resp := api.TaskResponse{
		Success: true,
		Message: message,
		Data:    &apiTask,
	}
	writeJSON(logger, w, resp, statusCode)
}

// writeValidationErrors sends the 422 envelope for task endpoints
func writeValidationErrors(logger *slog.Logger, w http.ResponseWriter, errs validation.Errors) {
	resp := api.ValidationErrorResponse{
		Success: false,
		Message: "Validation errors",
		Errors:  errs,
	}
	writeJSON(logger, w, resp, http.StatusUnprocessableEntity)
}
