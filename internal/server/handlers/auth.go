package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/taskly/internal/crypto"
	"github.com/avolkov/taskly/internal/models"
	"github.com/avolkov/taskly/internal/server/storage"
	"github.com/avolkov/taskly/internal/validation"
	"github.com/avolkov/taskly/pkg/api"
)

// dummyHash is a bcrypt hash of a random string. Login verifies against
// it when the email is unknown so the unknown-email and wrong-password
// paths take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthHandler implements registration, login, logout and the
// current-user endpoint.
type AuthHandler struct {
	logger    *slog.Logger
	users     storage.UserStorage
	tokens    storage.TokenStorage
	hasher    crypto.Hasher
	jwtConfig JWTConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, tokens storage.TokenStorage, hasher crypto.Hasher, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:    logger,
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		jwtConfig: jwtConfig,
	}
}

// Register handles POST /register. Validation runs before any
// persistence; on success a token is issued immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		writeMessage(h.logger, w, false, "invalid request body", http.StatusBadRequest)
		return
	}

	errs := validation.Errors{}
	if err := validation.ValidateName(req.Name); err != nil {
		errs.Add("name", err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		errs.Add("email", err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		errs.Add("password", err.Error())
	} else if req.Password != req.PasswordConfirmation {
		errs.Add("password", "password confirmation does not match")
	}

	if !errs.Empty() {
		writeJSON(h.logger, w, errs, http.StatusUnprocessableEntity)
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "email already taken", slog.String("email", req.Email))
			errs.Add("email", "email has already been taken")
			writeJSON(h.logger, w, errs, http.StatusUnprocessableEntity)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := GenerateAccessToken(h.jwtConfig, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email))

	resp := api.RegisterResponse{
		Success: true,
		User:    api.UserInfo{Name: user.Name, Email: user.Email},
		Token:   token,
	}

	writeJSON(h.logger, w, resp, http.StatusOK)
}

// Login handles POST /login. Unknown email and wrong password produce
// the identical response so accounts cannot be enumerated.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		writeMessage(h.logger, w, false, "invalid request body", http.StatusBadRequest)
		return
	}

	errs := validation.Errors{}
	if req.Email == "" {
		errs.Add("email", "email is required")
	}
	if req.Password == "" {
		errs.Add("password", "password is required")
	}
	if !errs.Empty() {
		writeJSON(h.logger, w, errs, http.StatusUnprocessableEntity)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Burn a compare anyway, then fail uniformly
			h.hasher.Verify(req.Password, dummyHash)
			h.logger.WarnContext(ctx, "login failed: unknown email")
			writeMessage(h.logger, w, false, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("user_id", user.ID))
		writeMessage(h.logger, w, false, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := GenerateAccessToken(h.jwtConfig, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	writeJSON(h.logger, w, api.LoginResponse{Success: true, Token: token}, http.StatusOK)
}

// Logout handles POST /logout. The presented token's jti is added to
// the revocation list. Idempotent: a missing, malformed, expired or
// already-revoked token still yields success, since there is nothing
// left to invalidate.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString := extractBearerToken(r)
	if tokenString == "" {
		writeMessage(h.logger, w, true, "Successfully logged out", http.StatusOK)
		return
	}

	claims, err := ValidateAccessToken(h.jwtConfig, tokenString)
	if err != nil {
		h.logger.DebugContext(ctx, "logout with invalid token", slog.Any("error", err))
		writeMessage(h.logger, w, true, "Successfully logged out", http.StatusOK)
		return
	}

	revoked := &models.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
		RevokedAt: time.Now(),
	}

	if err := h.tokens.RevokeToken(ctx, revoked); err != nil {
		h.logger.ErrorContext(ctx, "failed to revoke token", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged out", slog.String("user_id", claims.UserID))

	writeMessage(h.logger, w, true, "Successfully logged out", http.StatusOK)
}

// CurrentUser handles GET /user, returning the verified identity.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user id not found in context")
		writeMessage(h.logger, w, false, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		writeMessage(h.logger, w, false, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}

	writeJSON(h.logger, w, resp, http.StatusOK)
}

// extractBearerToken returns the token from an "Authorization: Bearer"
// header, or "" if the header is absent or malformed.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}
