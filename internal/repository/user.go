// Package repository provides the data access layer for the auth service.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/webstack-labs/auth-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user credential storage.
// All lookups are exact-match on the respective unique field and return
// ErrNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindBySessionID(ctx context.Context, sessionID string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)

	// SetSessionID and SetResetToken write exactly one column. Writes
	// are field-targeted so a read-modify-write flow can never clobber
	// fields a concurrent operation committed in between.
	SetSessionID(ctx context.Context, userID int64, sessionID *string) error
	SetResetToken(ctx context.Context, userID int64, token *string) error

	// ConsumeResetToken sets a new password hash and clears the reset
	// token as a single atomic operation. Returns ErrNotFound when the
	// token does not match any user.
	ConsumeResetToken(ctx context.Context, token string, newHash []byte) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by the given database.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// The unique index makes the existence check and the insert a
		// single atomic operation; a concurrent duplicate surfaces here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	return r.findOne(ctx, "session_id = ?", sessionID)
}

func (r *userRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.findOne(ctx, "reset_token = ?", token)
}

func (r *userRepository) SetSessionID(ctx context.Context, userID int64, sessionID *string) error {
	return r.setColumn(ctx, userID, "session_id", sessionID)
}

func (r *userRepository) SetResetToken(ctx context.Context, userID int64, token *string) error {
	return r.setColumn(ctx, userID, "reset_token", token)
}

func (r *userRepository) setColumn(ctx context.Context, userID int64, column string, value *string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s for user id %d: %w", column, userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) ConsumeResetToken(ctx context.Context, token string, newHash []byte) (*models.User, error) {
	// One transaction with a row lock: the password change and the token
	// clear either both happen or neither does, and a concurrent consume
	// of the same token finds no matching row.
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reset_token = ?", token).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to find user by reset token: %w", err)
		}

		user.HashedPassword = newHash
		user.ResetToken = nil
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
