package repository

import (
	"context"
	"sync"
	"time"

	"github.com/webstack-labs/auth-service/internal/models"
)

// MemoryRepository is a mutex-guarded in-memory UserRepository. It backs
// tests and local runs without postgres, and enforces the same uniqueness
// guarantees as the database schema.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
		users:  make(map[int64]*models.User),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	return r.findOne(func(u *models.User) bool {
		return u.SessionID != nil && *u.SessionID == sessionID
	})
}

func (r *MemoryRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.findOne(func(u *models.User) bool {
		return u.ResetToken != nil && *u.ResetToken == token
	})
}

func (r *MemoryRepository) SetSessionID(ctx context.Context, userID int64, sessionID *string) error {
	return r.setField(userID, func(u *models.User) {
		u.SessionID = clonePtr(sessionID)
	})
}

func (r *MemoryRepository) SetResetToken(ctx context.Context, userID int64, token *string) error {
	return r.setField(userID, func(u *models.User) {
		u.ResetToken = clonePtr(token)
	})
}

// setField mutates exactly one field of the stored record under the
// lock, leaving everything a concurrent operation wrote untouched.
func (r *MemoryRepository) setField(userID int64, mutate func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	mutate(u)
	u.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) ConsumeResetToken(ctx context.Context, token string, newHash []byte) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			u.HashedPassword = newHash
			u.ResetToken = nil
			u.UpdatedAt = time.Now()
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) findOne(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// cloneUser copies a record so callers never share memory with the store.
func cloneUser(u *models.User) *models.User {
	c := *u
	c.SessionID = clonePtr(u.SessionID)
	c.ResetToken = clonePtr(u.ResetToken)
	if u.HashedPassword != nil {
		c.HashedPassword = append([]byte(nil), u.HashedPassword...)
	}
	return &c
}
