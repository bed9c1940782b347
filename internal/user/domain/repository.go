package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is the credential store contract. Email lookups expect the
// caller to have lower-cased the address already; Create relies on the
// storage-level unique constraints as the authoritative duplicate signal.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	// Update applies the given fields and returns the refreshed record.
	Update(ctx context.Context, id snowflake.ID, fields map[string]any) (*User, error)
}
