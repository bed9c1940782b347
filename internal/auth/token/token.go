// Package token mints and validates the stateless bearer tokens that
// authorize API requests.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fixitworks/fixit/internal/clock"
	"github.com/fixitworks/fixit/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 24 * time.Hour

const DefaultRole = "user"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the signed payload bound to a bearer token.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and validates session tokens with a shared HS256 secret.
// Validation is stateless: signature plus expiry, no server-side lookup.
type Issuer struct {
	secret []byte
	clock  clock.Clock
}

func NewIssuer(cfg config.Config, clk clock.Clock) (*Issuer, error) {
	secret := strings.TrimSpace(cfg.AuthJWTSecret)
	if secret == "" {
		return nil, errors.New("token issuer requires a signing secret")
	}
	return &Issuer{secret: []byte(secret), clock: clk}, nil
}

// Issue mints a token for the user with a fixed 24 hour lifetime.
func (i *Issuer) Issue(userID snowflake.ID, role string) (string, error) {
	if role == "" {
		role = DefaultRole
	}
	now := i.clock.Now()
	claims := Claims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate parses the raw token and returns its claims. Expired tokens are
// reported distinctly from malformed or mis-signed ones.
func (i *Issuer) Validate(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
