// Package domain contains core types for user accounts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User represents a marketplace account. PasswordHash is nil for accounts
// created through Google sign-in only; GoogleID is nil for password-only
// accounts. Both may be set once a Google identity is linked.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Name         string       `gorm:"type:text;not null"`
	Email        string       `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash *string      `gorm:"type:text"`
	GoogleID     *string      `gorm:"column:google_id;type:text;uniqueIndex"`
	AvatarPath   *string      `gorm:"column:avatar_path;type:text"`

	// Outstanding password-reset code. Set and cleared together.
	ResetCode          *string    `gorm:"column:reset_code;type:text"`
	ResetCodeExpiresAt *time.Time `gorm:"column:reset_code_expires_at"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// HasPassword reports whether the account can use password sign-in.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
