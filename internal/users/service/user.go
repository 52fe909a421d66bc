package service

import (
	"context"
	"errors"

	userserrors "staybook/internal/users/errors"
	"staybook/internal/users/repository"
	"staybook/internal/users/validator"
	"staybook/pkg/auth"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/kafka"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"
	"staybook/pkg/validation"
)

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error)
	Profile(ctx context.Context, userID string) (*model.Profile, error)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(identity auth.Identity) (string, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	hasher    *auth.PasswordHasher
	tokens    TokenIssuer
	events    kafka.Emitter
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	hasher *auth.PasswordHasher,
	tokens TokenIssuer,
	events kafka.Emitter,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		hasher:    hasher,
		tokens:    tokens,
		events:    events,
		cfg:       cfg,
	}
}

type userRegisteredEvent struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateRegister(req); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "error", err)
		return nil, validationError(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if auth.IsPasswordTooLong(err) {
			return nil, apperrors.Validation("Password is too long", nil)
		}
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			s.cfg.Log.Warn("Registration rejected, email already registered", "email", req.Email)
			return nil, apperrors.Validation("Email is already registered", map[string]any{"email": req.Email})
		}
		s.cfg.Log.Error("Failed to create user", "email", req.Email, "error", err)
		return nil, apperrors.Validation("Failed to create user", nil).WithCause(err)
	}

	s.events.Emit(ctx, kafka.EventUserRegistered, user.ID, userRegisteredEvent{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})
	s.cfg.Log.Info("User registered successfully", "id", user.ID)
	return user, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, "", validationError(err)
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			s.cfg.Log.Info("Login for unknown email", "email", req.Email)
			return nil, "", apperrors.Validation("User not found", nil)
		}
		return nil, "", apperrors.Internal("Failed to look up user", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.cfg.Log.Info("Login with invalid password", "id", user.ID)
		return nil, "", apperrors.Validation("Invalid password", nil)
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, "", apperrors.Internal("Failed to issue session token", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return user, token, nil
}

func (s *userService) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", userID)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.Unauthorized("Invalid session token")
		}
		return nil, apperrors.Internal("Failed to retrieve profile", err)
	}

	profile := user.Profile()
	return &profile, nil
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid input", verrs.Details())
	}
	return apperrors.Validation("Invalid input", map[string]any{"error": err.Error()})
}
