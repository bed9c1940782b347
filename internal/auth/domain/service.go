// Package domain defines the auth orchestrator contract and error taxonomy.
package domain

import (
	"context"
	"io"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/fixitworks/fixit/internal/user/domain"
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResult, error)
	Signin(ctx context.Context, req SigninRequest) (*AuthResult, error)
	GoogleLogin(ctx context.Context, rawToken string) (*AuthResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	SendPhoneOTP(ctx context.Context, phone string) error
	VerifyPhoneOTP(ctx context.Context, phone, code string) error
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*userdomain.User, error)
}

type SignupRequest struct {
	Name     string
	Email    string
	Password string
}

type SigninRequest struct {
	Email    string
	Password string
}

type ResetPasswordRequest struct {
	Email       string
	Code        string
	NewPassword string
}

// UpdateProfileRequest carries only the fields the caller supplied; nil or
// empty members keep the stored value.
type UpdateProfileRequest struct {
	UserID     snowflake.ID
	Name       string
	Email      string
	AvatarName string
	Avatar     io.Reader
}

// AuthResult is a freshly minted bearer token plus the account it binds.
type AuthResult struct {
	Token string
	User  *userdomain.User
}
