// Package models contains data models for the auth service.
package models

import "time"

// User represents a registered account. SessionID and ResetToken are
// nullable opaque tokens; each maps back to at most one user while set.
type User struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword []byte    `json:"-" gorm:"not null"`
	SessionID      *string   `json:"-" gorm:"uniqueIndex"`
	ResetToken     *string   `json:"-" gorm:"uniqueIndex"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
