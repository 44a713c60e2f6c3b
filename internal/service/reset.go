package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/webstack-labs/auth-service/internal/repository"
)

// ResetTokens implements the single-use password reset flow.
type ResetTokens struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

// NewResetTokens creates a ResetTokens flow over the given store and hasher.
func NewResetTokens(userRepo repository.UserRepository, hasher PasswordHasher) *ResetTokens {
	return &ResetTokens{userRepo: userRepo, hasher: hasher}
}

// Request generates a fresh reset token for the user with the given
// email, overwriting any prior unconsumed token.
func (r *ResetTokens) Request(ctx context.Context, email string) (string, error) {
	user, err := r.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	// Only the token column is written; a password change committed
	// since the lookup above survives.
	token := uuid.NewString()
	if err := r.userRepo.SetResetToken(ctx, user.ID, &token); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// Consume changes the password of the user holding token and clears the
// token in a single store operation. A failure at any point leaves the
// prior password intact.
func (r *ResetTokens) Consume(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}

	hash, err := r.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if _, err := r.userRepo.ConsumeResetToken(ctx, token, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	return nil
}
