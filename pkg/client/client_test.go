package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/taskly/pkg/api"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	c := NewClient(baseURL)

	assert.NotNil(t, c)
	assert.Equal(t, baseURL, c.baseURL)
	assert.NotNil(t, c.httpClient)
	assert.Equal(t, 30*time.Second, c.httpClient.Timeout)
}

func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ana", req.Name)
		assert.Equal(t, "ana@x.com", req.Email)

		_ = json.NewEncoder(w).Encode(api.RegisterResponse{
			Success: true,
			User:    api.UserInfo{Name: "Ana", Email: "ana@x.com"},
			Token:   "tok-123",
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	resp, err := c.Register(context.Background(), api.RegisterRequest{
		Name:                 "Ana",
		Email:                "ana@x.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "tok-123", resp.Token)

	// The issued token is stored for subsequent calls
	assert.Equal(t, "tok-123", c.Token())
}

func TestClient_RegisterValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		// Auth endpoints return a bare field map on 422
		_ = json.NewEncoder(w).Encode(map[string][]string{
			"email": {"The email has already been taken."},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Register(context.Background(), api.RegisterRequest{
		Name:                 "Ana",
		Email:                "taken@x.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Errors["email"], "The email has already been taken.")
	assert.Empty(t, c.Token())
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@x.com", req.Email)

		_ = json.NewEncoder(w).Encode(api.LoginResponse{Success: true, Token: "tok-456"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	resp, err := c.Login(context.Background(), api.LoginRequest{Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "tok-456", resp.Token)
	assert.Equal(t, "tok-456", c.Token())
}

func TestClient_LoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.MessageResponse{Success: false, Message: "Invalid email or password"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Login(context.Background(), api.LoginRequest{Email: "ana@x.com", Password: "wrong"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestClient_Logout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(api.MessageResponse{Success: true, Message: "Successfully logged out"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	c.SetToken("tok-123")

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token())
}

func TestClient_CurrentUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(api.UserResponse{
			ID:    "user-1",
			Name:  "Ana",
			Email: "ana@x.com",
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	c.SetToken("tok-123")

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@x.com", user.Email)
}

func TestClient_TaskCRUD(t *testing.T) {
	task := api.Task{
		ID:          "task-1",
		UserID:      "user-1",
		Title:       "Buy milk",
		Description: "2%",
		Date:        "2025-01-01",
		Priority:    "low",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/tasks":
			var req api.CreateTaskRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Buy milk", req.Title)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(api.TaskResponse{Success: true, Data: &task})
		case r.Method == http.MethodGet && r.URL.Path == "/tasks":
			_ = json.NewEncoder(w).Encode(api.TaskListResponse{Success: true, Data: []api.Task{task}})
		case r.Method == http.MethodGet && r.URL.Path == "/tasks/task-1":
			_ = json.NewEncoder(w).Encode(api.TaskResponse{Success: true, Data: &task})
		case r.Method == http.MethodPut && r.URL.Path == "/tasks/task-1":
			var req api.UpdateTaskRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.Priority)
			assert.Equal(t, "high", *req.Priority)
			updated := task
			updated.Priority = "high"
			_ = json.NewEncoder(w).Encode(api.TaskResponse{Success: true, Data: &updated})
		case r.Method == http.MethodDelete && r.URL.Path == "/tasks/task-1":
			_ = json.NewEncoder(w).Encode(api.MessageResponse{Success: true, Message: "Task deleted successfully"})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := NewClient(server.URL)
	c.SetToken("tok-123")
	ctx := context.Background()

	created, err := c.CreateTask(ctx, api.CreateTaskRequest{
		Title:       "Buy milk",
		Description: "2%",
		Date:        "2025-01-01",
		Priority:    "low",
	})
	require.NoError(t, err)
	assert.Equal(t, "task-1", created.ID)

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)

	got, err := c.GetTask(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)

	priority := "high"
	updated, err := c.UpdateTask(ctx, "task-1", api.UpdateTaskRequest{Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, "high", updated.Priority)

	require.NoError(t, c.DeleteTask(ctx, "task-1"))
}

func TestClient_TaskNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(api.MessageResponse{Success: false, Message: "Task not found"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	c.SetToken("tok-123")

	_, err := c.GetTask(context.Background(), "nope")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Task not found", apiErr.Message)
}

func TestClient_TaskValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(api.ValidationErrorResponse{
			Success: false,
			Message: "Validation errors",
			Errors:  map[string][]string{"priority": {"The selected priority is invalid."}},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	c.SetToken("tok-123")

	_, err := c.CreateTask(context.Background(), api.CreateTaskRequest{
		Title:    "x",
		Date:     "2025-01-01",
		Priority: "urgent",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Validation errors", apiErr.Message)
	assert.Contains(t, apiErr.Errors["priority"], "The selected priority is invalid.")
}
