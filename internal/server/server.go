// Package server assembles the HTTP route table and middleware chain.
package server

import (
	"log/slog"
	"net/http"

	"github.com/avolkov/taskly/internal/server/handlers"
	"github.com/avolkov/taskly/internal/server/middleware"
	"github.com/avolkov/taskly/internal/server/storage"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Logger    *slog.Logger
	Auth      *handlers.AuthHandler
	Tasks     *handlers.TaskHandler
	Health    *handlers.HealthHandler
	Tokens    storage.TokenStorage
	JWTConfig handlers.JWTConfig
}

// NewRouter builds the route table. Task routes and /user sit behind
// the auth middleware; /register, /login and /logout do not — logout
// does its own token handling so it can stay idempotent.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.AuthMiddleware(deps.Logger, deps.JWTConfig, deps.Tokens)

	mux.HandleFunc("GET /health", deps.Health.Health)

	mux.HandleFunc("POST /register", deps.Auth.Register)
	mux.HandleFunc("POST /login", deps.Auth.Login)
	mux.HandleFunc("POST /logout", deps.Auth.Logout)
	mux.Handle("GET /user", auth(http.HandlerFunc(deps.Auth.CurrentUser)))

	mux.Handle("GET /tasks", auth(http.HandlerFunc(deps.Tasks.List)))
	mux.Handle("POST /tasks", auth(http.HandlerFunc(deps.Tasks.Create)))
	mux.Handle("GET /tasks/{id}", auth(http.HandlerFunc(deps.Tasks.Get)))
	mux.Handle("PUT /tasks/{id}", auth(http.HandlerFunc(deps.Tasks.Update)))
	mux.Handle("DELETE /tasks/{id}", auth(http.HandlerFunc(deps.Tasks.Delete)))

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(deps.Logger, []string{"/health"})(handler)
	handler = middleware.RecoveryMiddleware(deps.Logger)(handler)

	return handler
}
