// Package google verifies Google-issued ID tokens for federated sign-in.
package google

import (
	"context"
	"errors"
	"strings"

	"github.com/fixitworks/fixit/internal/config"
	"google.golang.org/api/idtoken"
)

var (
	ErrMissingToken  = errors.New("google token missing")
	ErrMisconfigured = errors.New("google client id not configured")
	ErrInvalidToken  = errors.New("google token verification failed")
)

// Identity carries the verified claims the provisioning step needs.
type Identity struct {
	Sub       string
	Email     string
	Name      string
	AvatarURL string
}

// Verifier validates ID tokens against the configured OAuth client audience.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

type verifier struct {
	clientID string
}

func NewVerifier(cfg config.Config) Verifier {
	return &verifier{clientID: cfg.GoogleClientID}
}

func (v *verifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrMissingToken
	}
	if v.clientID == "" {
		return nil, ErrMisconfigured
	}

	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	sub, _ := payload.Claims["sub"].(string)
	picture, _ := payload.Claims["picture"].(string)
	if email == "" || sub == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		Sub:       sub,
		Email:     email,
		Name:      name,
		AvatarURL: picture,
	}, nil
}
