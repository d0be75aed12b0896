// Package api defines the JSON request and response bodies of the
// Taskly HTTP API. It is shared by the server handlers and the Go
// client in pkg/client.
package api

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// UserInfo is the public projection of a user. The password hash is
// never part of any response.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterResponse is the success body of POST /register. A token is
// issued immediately on signup.
type RegisterResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
	Token   string   `json:"token"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success body of POST /login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// MessageResponse is a generic success/failure acknowledgment.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserResponse is the body of GET /user.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}
