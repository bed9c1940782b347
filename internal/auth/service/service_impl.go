package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fixitworks/fixit/internal/auth/domain"
	"github.com/fixitworks/fixit/internal/auth/google"
	"github.com/fixitworks/fixit/internal/auth/password"
	"github.com/fixitworks/fixit/internal/auth/token"
	"github.com/fixitworks/fixit/internal/clock"
	"github.com/fixitworks/fixit/internal/config"
	"github.com/fixitworks/fixit/internal/notification"
	"github.com/fixitworks/fixit/internal/otp"
	"github.com/fixitworks/fixit/internal/phone"
	"github.com/fixitworks/fixit/internal/storage"
	userdomain "github.com/fixitworks/fixit/internal/user/domain"
	"go.uber.org/zap"
)

const (
	resetCodeTTL = 10 * time.Minute
	phoneCodeTTL = 5 * time.Minute
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	log      *zap.Logger
	users    userdomain.Repository
	tokens   *token.Issuer
	verifier google.Verifier
	mailer   *notification.Mailer
	sms      notification.SMSProvider
	avatars  storage.AvatarStore
	phoneOTP *otp.Engine
	resetOTP *otp.Engine
	genID    *snowflake.Node

	defaultCountryCode string
}

func New(
	log *zap.Logger,
	cfg config.Config,
	users userdomain.Repository,
	tokens *token.Issuer,
	verifier google.Verifier,
	mailer *notification.Mailer,
	sms notification.SMSProvider,
	avatars storage.AvatarStore,
	phoneStore otp.Store,
	clk clock.Clock,
	genID *snowflake.Node,
) domain.Service {
	return &Service{
		log:                log.Named("auth.service"),
		users:              users,
		tokens:             tokens,
		verifier:           verifier,
		mailer:             mailer,
		sms:                sms,
		avatars:            avatars,
		phoneOTP:           otp.NewEngine(phoneStore, clk, phoneCodeTTL),
		resetOTP:           otp.NewEngine(otp.NewUserStore(users), clk, resetCodeTTL),
		genID:              genID,
		defaultCountryCode: cfg.DefaultCountryCode,
	}
}

func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	// Friendly pre-check only. The unique constraint on users.email is the
	// authoritative duplicate signal under concurrent signups.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, userdomain.ErrEmailTaken
	} else if !errors.Is(err, userdomain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &userdomain.User{
		ID:           s.genID.Generate(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: &hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.result(user)
}

func (s *Service) Signin(ctx context.Context, req domain.SigninRequest) (*domain.AuthResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.HasPassword() {
		return nil, domain.ErrNoPassword
	}
	if !password.Verify(req.Password, *user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.result(user)
}

func (s *Service) GoogleLogin(ctx context.Context, rawToken string) (*domain.AuthResult, error) {
	identity, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(identity.Email))
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		user = s.backfillGoogleIdentity(ctx, user, identity)
	case errors.Is(err, userdomain.ErrUserNotFound):
		user, err = s.provisionGoogleUser(ctx, email, identity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.result(user)
}

func (s *Service) provisionGoogleUser(ctx context.Context, email string, identity *google.Identity) (*userdomain.User, error) {
	user := &userdomain.User{
		ID:       s.genID.Generate(),
		Name:     identity.Name,
		Email:    email,
		GoogleID: &identity.Sub,
	}
	if identity.AvatarURL != "" {
		avatar := identity.AvatarURL
		user.AvatarPath = &avatar
	}

	err := s.users.Create(ctx, user)
	if err == nil {
		return user, nil
	}
	// Lost a provisioning race for the same email. The existing account is
	// the one to log into.
	if errors.Is(err, userdomain.ErrEmailTaken) {
		return s.users.FindByEmail(ctx, email)
	}
	return nil, err
}

// backfillGoogleIdentity links the Google subject and fills a missing avatar
// on an existing account. Backfill failure never fails the login.
func (s *Service) backfillGoogleIdentity(ctx context.Context, user *userdomain.User, identity *google.Identity) *userdomain.User {
	fields := map[string]any{}
	if user.GoogleID == nil {
		fields["google_id"] = identity.Sub
	}
	if (user.AvatarPath == nil || *user.AvatarPath == "") && identity.AvatarURL != "" {
		fields["avatar_path"] = identity.AvatarURL
	}
	if len(fields) == 0 {
		return user
	}

	updated, err := s.users.Update(ctx, user.ID, fields)
	if err != nil {
		s.log.Warn("google identity backfill failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return user
	}
	return updated
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.resetOTP.Issue(ctx, email)
	if err != nil {
		return err
	}

	// The code is already persisted; a send failure is reported but does not
	// invalidate it.
	if err := s.mailer.SendResetCode(ctx, user.Email, user.Name, code, int(resetCodeTTL.Minutes())); err != nil {
		s.log.Error("reset code mail failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	// A successful verification consumes the code before the password is
	// touched, so a replay reports no outstanding request.
	if err := s.resetOTP.Verify(ctx, email, req.Code); err != nil {
		return mapOTPError(err)
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if _, err := s.users.Update(ctx, user.ID, map[string]any{"password_hash": hashed}); err != nil {
		return err
	}

	if err := s.mailer.SendResetConfirmation(ctx, user.Email, user.Name); err != nil {
		s.log.Warn("reset confirmation mail failed", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return nil
}

func (s *Service) SendPhoneOTP(ctx context.Context, rawPhone string) error {
	number := phone.Normalize(rawPhone, s.defaultCountryCode)

	// Issuing replaces any outstanding code for the number: last code wins.
	code, err := s.phoneOTP.Issue(ctx, number)
	if err != nil {
		return err
	}

	if err := s.sms.Send(ctx, number, notification.OTPSMSBody(code)); err != nil {
		s.log.Error("otp sms failed", zap.String("phone", number), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	return nil
}

func (s *Service) VerifyPhoneOTP(ctx context.Context, rawPhone, code string) error {
	number := phone.Normalize(rawPhone, s.defaultCountryCode)
	if err := s.phoneOTP.Verify(ctx, number, code); err != nil {
		return mapOTPError(err)
	}
	return nil
}

func (s *Service) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*userdomain.User, error) {
	fields := map[string]any{}

	if name := strings.TrimSpace(req.Name); name != "" {
		fields["name"] = name
	}
	if req.Email != "" {
		email, err := normalizeEmail(req.Email)
		if err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if req.Avatar != nil && req.AvatarName != "" {
		path, err := s.avatars.Save(ctx, req.AvatarName, req.Avatar)
		if err != nil {
			return nil, err
		}
		fields["avatar_path"] = path
	}

	// Omitted fields keep their stored values.
	if len(fields) == 0 {
		return s.users.FindByID(ctx, req.UserID)
	}
	return s.users.Update(ctx, req.UserID, fields)
}

func (s *Service) result(user *userdomain.User) (*domain.AuthResult, error) {
	tok, err := s.tokens.Issue(user.ID, token.DefaultRole)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{Token: tok, User: user}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}

func mapOTPError(err error) error {
	switch {
	case errors.Is(err, otp.ErrNotFound):
		return domain.ErrNoOutstandingRequest
	case errors.Is(err, otp.ErrExpired):
		return domain.ErrCodeExpired
	case errors.Is(err, otp.ErrMismatch):
		return domain.ErrInvalidCode
	default:
		return err
	}
}
