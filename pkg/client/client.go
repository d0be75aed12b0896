// Package client is a typed Go client for the Taskly HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avolkov/taskly/pkg/api"
)

// APIError is returned when the server answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
	// Errors holds the field -> messages map of a 422 response.
	Errors map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.StatusCode)
}

// Client is an HTTP client for the Taskly server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Carry the Authorization header across redirects
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetToken sets the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token, empty if not authenticated.
func (c *Client) Token() string {
	return c.token
}

// Register creates an account. On success the returned token is stored
// on the client for subsequent calls.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	c.token = resp.Token
	return &resp, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	c.token = resp.Token
	return &resp, nil
}

// Logout revokes the current token and clears it from the client.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	c.token = ""
	return nil
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodGet, "/user", nil, &resp); err != nil {
		return nil, fmt.Errorf("current user request failed: %w", err)
	}
	return &resp, nil
}

// ListTasks returns all tasks owned by the authenticated user.
func (c *Client) ListTasks(ctx context.Context) ([]api.Task, error) {
	var resp api.TaskListResponse
	if err := c.doRequest(ctx, http.MethodGet, "/tasks", nil, &resp); err != nil {
		return nil, fmt.Errorf("list tasks request failed: %w", err)
	}
	return resp.Data, nil
}

// CreateTask creates a task and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error) {
	var resp api.TaskResponse
	if err := c.doRequest(ctx, http.MethodPost, "/tasks", req, &resp); err != nil {
		return nil, fmt.Errorf("create task request failed: %w", err)
	}
	return resp.Data, nil
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, id string) (*api.Task, error) {
	var resp api.TaskResponse
	if err := c.doRequest(ctx, http.MethodGet, "/tasks/"+id, nil, &resp); err != nil {
		return nil, fmt.Errorf("get task request failed: %w", err)
	}
	return resp.Data, nil
}

// UpdateTask applies a partial update and returns the updated record.
func (c *Client) UpdateTask(ctx context.Context, id string, req api.UpdateTaskRequest) (*api.Task, error) {
	var resp api.TaskResponse
	if err := c.doRequest(ctx, http.MethodPut, "/tasks/"+id, req, &resp); err != nil {
		return nil, fmt.Errorf("update task request failed: %w", err)
	}
	return resp.Data, nil
}

// DeleteTask removes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/tasks/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete task request failed: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// parseError maps an error body to an APIError. Validation failures on
// the auth endpoints come back as a bare field map, task endpoints nest
// theirs under "errors"; both shapes are handled.
func parseError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}

	var structured api.ValidationErrorResponse
	if err := json.Unmarshal(body, &structured); err == nil && (structured.Message != "" || len(structured.Errors) > 0) {
		apiErr.Message = structured.Message
		apiErr.Errors = structured.Errors
		return apiErr
	}

	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		apiErr.Message = "validation failed"
		apiErr.Errors = fields
		return apiErr
	}

	apiErr.Message = string(body)
	return apiErr
}
