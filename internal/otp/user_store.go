package otp

import (
	"context"

	userdomain "github.com/fixitworks/fixit/internal/user/domain"
)

// UserStore backs password-reset codes with the user row itself, keyed by
// normalized email. The code survives restarts for its whole window.
type UserStore struct {
	users userdomain.Repository
}

func NewUserStore(users userdomain.Repository) *UserStore {
	return &UserStore{users: users}
}

func (s *UserStore) Save(ctx context.Context, email string, rec Record) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = s.users.Update(ctx, user.ID, map[string]any{
		"reset_code":            rec.Code,
		"reset_code_expires_at": rec.ExpiresAt,
	})
	return err
}

func (s *UserStore) Get(ctx context.Context, email string) (Record, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return Record{}, err
	}
	if user.ResetCode == nil || user.ResetCodeExpiresAt == nil {
		return Record{}, ErrNotFound
	}
	return Record{Code: *user.ResetCode, ExpiresAt: *user.ResetCodeExpiresAt}, nil
}

func (s *UserStore) Delete(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = s.users.Update(ctx, user.ID, map[string]any{
		"reset_code":            nil,
		"reset_code_expires_at": nil,
	})
	return err
}
