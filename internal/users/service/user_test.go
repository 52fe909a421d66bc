package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	userserrors "staybook/internal/users/errors"
	"staybook/internal/users/validator"
	"staybook/pkg/auth"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ────────────────────────────────────────────────
// In-memory repository for testing
// ────────────────────────────────────────────────

type memoryUserRepository struct {
	mu        sync.Mutex
	users     map[string]*model.User
	createErr error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*model.User)}
}

func (m *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return userserrors.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID().Hex()
	user.CreatedAt = time.Now().UTC()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, userserrors.ErrInvalidID
	}
	u, ok := m.users[id]
	if !ok {
		return nil, userserrors.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (m *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, userserrors.ErrNotFound
}

type recordingEmitter struct {
	events []string
}

func (e *recordingEmitter) Emit(ctx context.Context, eventType, key string, payload any) {
	e.events = append(e.events, eventType+":"+key)
}

func newTestService(t *testing.T) (UserService, *memoryUserRepository, *auth.TokenService, *recordingEmitter) {
	t.Helper()
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	repo := newMemoryUserRepository()
	tokens := auth.NewTokenService("test-secret", 0)
	events := &recordingEmitter{}
	svc := NewUserService(repo, validator.NewUserValidator(log), auth.NewPasswordHasher(4), tokens, events, cfg)
	return svc, repo, tokens, events
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.StatusCode()
}

// ────────────────────────────────────────────────
// Tests for Register()
// ────────────────────────────────────────────────

func TestRegister_StoresHashNotPassword(t *testing.T) {
	svc, repo, _, events := newTestService(t)

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "  Ada   Lovelace ",
		Email:    " Ada@Example.COM ",
		Password: "engine",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected id to be assigned")
	}
	if user.Name != "Ada Lovelace" {
		t.Errorf("expected normalized name, got %q", user.Name)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}

	stored := repo.users[user.ID]
	if stored.PasswordHash == "engine" || stored.PasswordHash == "" {
		t.Errorf("password must be stored hashed, got %q", stored.PasswordHash)
	}
	if !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", stored.PasswordHash)
	}

	if len(events.events) != 1 || events.events[0] != "user.registered:"+user.ID {
		t.Errorf("expected user.registered event, got %v", events.events)
	}
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		req        model.RegisterRequest
		setup      func(repo *memoryUserRepository)
		wantStatus int
	}{
		{
			name:       "missing email",
			req:        model.RegisterRequest{Name: "A", Password: "p"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "malformed email",
			req:        model.RegisterRequest{Name: "A", Email: "not-an-email", Password: "p"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing password",
			req:        model.RegisterRequest{Name: "A", Email: "a@example.com"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "duplicate email",
			req:  model.RegisterRequest{Name: "A", Email: "taken@example.com", Password: "p"},
			setup: func(repo *memoryUserRepository) {
				repo.users["x"] = &model.User{ID: "x", Email: "taken@example.com"}
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "store failure",
			req:  model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "p"},
			setup: func(repo *memoryUserRepository) {
				repo.createErr = errors.New("document failed validation")
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, events := newTestService(t)
			if tt.setup != nil {
				tt.setup(repo)
			}

			_, err := svc.Register(context.Background(), &tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := statusOf(t, err); got != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, got)
			}
			if len(events.events) != 0 {
				t.Errorf("no event expected on failure, got %v", events.events)
			}
		})
	}
}

// ────────────────────────────────────────────────
// Tests for Login()
// ────────────────────────────────────────────────

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, _, tokens, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(ctx, &model.LoginRequest{Email: "A@example.com ", Password: "secret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	identity, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if identity.UserID != registered.ID || identity.Email != "a@example.com" {
		t.Errorf("unexpected identity %+v", identity)
	}
}

func TestLogin_Failures(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tests := []struct {
		name    string
		req     model.LoginRequest
		wantMsg string
	}{
		{name: "wrong password", req: model.LoginRequest{Email: "a@example.com", Password: "nope"}, wantMsg: "Invalid password"},
		{name: "unknown email", req: model.LoginRequest{Email: "b@example.com", Password: "secret"}, wantMsg: "User not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, token, err := svc.Login(ctx, &tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if token != "" {
				t.Error("no token should be issued on failure")
			}
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.StatusCode() != http.StatusUnprocessableEntity {
				t.Errorf("expected 422, got %d", appErr.StatusCode())
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, appErr.Message)
			}
		})
	}
}

// ────────────────────────────────────────────────
// Tests for Profile()
// ────────────────────────────────────────────────

func TestProfile(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &model.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	profile, err := svc.Profile(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ID != user.ID || profile.Name != "Ada" || profile.Email != "ada@example.com" {
		t.Errorf("unexpected profile %+v", profile)
	}

	_, err = svc.Profile(ctx, primitive.NewObjectID().Hex())
	if got := statusOf(t, err); got != http.StatusNotFound {
		t.Errorf("expected 404 for unknown user, got %d", got)
	}
}
