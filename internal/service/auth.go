package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/webstack-labs/auth-service/internal/metrics"
	"github.com/webstack-labs/auth-service/internal/models"
	"github.com/webstack-labs/auth-service/internal/repository"
)

// AuthService is the facade the HTTP layer talks to. It orchestrates the
// credential store, password hasher, session manager and reset token flow.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	ValidLogin(ctx context.Context, email, password string) bool
	CreateSession(ctx context.Context, email string) (string, error)
	// GetUserFromSession returns (nil, nil) for an empty or unknown
	// session id; callers must treat a nil user as not authenticated.
	GetUserFromSession(ctx context.Context, sessionID string) (*models.User, error)
	DestroySession(ctx context.Context, userID int64) error
	GetResetPasswordToken(ctx context.Context, email string) (string, error)
	UpdatePassword(ctx context.Context, resetToken, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	sessions *SessionManager
	resets   *ResetTokens
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewAuthService creates the auth facade.
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, sessions *SessionManager, resets *ResetTokens, m *metrics.Metrics, log *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
		resets:   resets,
		metrics:  m,
		log:      log,
	}
}

func (s *authService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          email,
		HashedPassword: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.metrics.Registrations.Inc()
	s.log.InfoContext(ctx, "user registered", "email", user.Email, "user_id", user.ID)
	return user, nil
}

// ValidLogin reports whether email and password identify a user. Unknown
// emails and store errors both yield false; the boolean never carries an
// error outward.
func (s *authService) ValidLogin(ctx context.Context, email, password string) bool {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.ErrorContext(ctx, "login lookup failed", "error", err)
		}
		s.metrics.Logins.WithLabelValues("failure").Inc()
		return false
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.metrics.Logins.WithLabelValues("failure").Inc()
		return false
	}

	s.metrics.Logins.WithLabelValues("success").Inc()
	return true
}

func (s *authService) CreateSession(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	sessionID, err := s.sessions.Create(ctx, user)
	if err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "session created", "user_id", user.ID)
	return sessionID, nil
}

func (s *authService) GetUserFromSession(ctx context.Context, sessionID string) (*models.User, error) {
	user, err := s.sessions.UserFrom(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.SessionLookups.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	s.metrics.SessionLookups.WithLabelValues("hit").Inc()
	return user, nil
}

func (s *authService) DestroySession(ctx context.Context, userID int64) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.sessions.Destroy(ctx, user); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "session destroyed", "user_id", user.ID)
	return nil
}

func (s *authService) GetResetPasswordToken(ctx context.Context, email string) (string, error) {
	token, err := s.resets.Request(ctx, email)
	if err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "reset token issued", "email", email)
	return token, nil
}

func (s *authService) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	if err := s.resets.Consume(ctx, resetToken, newPassword); err != nil {
		return err
	}

	s.metrics.PasswordResets.Inc()
	s.log.InfoContext(ctx, "password updated")
	return nil
}
