package api

import "time"

// Task is the wire representation of a task record.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTaskRequest is the body of POST /tasks. All fields are required.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}. Every field is
// optional; absent fields keep their stored value. Pointer types
// distinguish "absent" from "present but empty".
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *Task  `json:"data"`
}

// TaskListResponse wraps a task collection. Data is an empty array,
// never null, when the user owns no tasks.
type TaskListResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    []Task `json:"data"`
}

// ValidationErrorResponse is the 422 body for task endpoints:
// a field -> messages map under "errors".
type ValidationErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}
