package handlers

import (
	"context"
	"log/slog"
	"os"

	"github.com/avolkov/taskly/internal/models"
	"github.com/avolkov/taskly/internal/server/storage"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// contextWithUserID mimics what the auth middleware injects
func contextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// fakeHasher is a cheap deterministic Hasher for tests
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

// mockUserStorage is a map-backed UserStorage for tests
type mockUserStorage struct {
	users       map[string]*models.User // email -> User
	createError error
	getError    error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Email]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

// mockTokenStorage is a map-backed revocation list for tests
type mockTokenStorage struct {
	revoked     map[string]*models.RevokedToken
	revokeError error
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{revoked: make(map[string]*models.RevokedToken)}
}

func (m *mockTokenStorage) RevokeToken(ctx context.Context, token *models.RevokedToken) error {
	if m.revokeError != nil {
		return m.revokeError
	}
	m.revoked[token.JTI] = token
	return nil
}

func (m *mockTokenStorage) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

func (m *mockTokenStorage) DeleteExpired(ctx context.Context) (int, error) {
	return 0, nil
}

// mockTaskStorage is a map-backed TaskStorage for tests
type mockTaskStorage struct {
	tasks map[string]*models.Task // task id -> Task
}

func newMockTaskStorage() *mockTaskStorage {
	return &mockTaskStorage{tasks: make(map[string]*models.Task)}
}

func (m *mockTaskStorage) CreateTask(ctx context.Context, task *models.Task) error {
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskStorage) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	task, ok := m.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, storage.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *mockTaskStorage) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	tasks := []*models.Task{}
	for _, task := range m.tasks {
		if task.UserID == userID {
			copied := *task
			tasks = append(tasks, &copied)
		}
	}
	return tasks, nil
}

func (m *mockTaskStorage) UpdateTask(ctx context.Context, task *models.Task) error {
	existing, ok := m.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return storage.ErrTaskNotFound
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskStorage) DeleteTask(ctx context.Context, userID, taskID string) error {
	task, ok := m.tasks[taskID]
	if !ok || task.UserID != userID {
		return storage.ErrTaskNotFound
	}
	delete(m.tasks, taskID)
	return nil
}
