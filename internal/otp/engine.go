// Package otp generates and checks the one-time codes used for password
// reset and phone verification.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/fixitworks/fixit/internal/clock"
)

var (
	ErrNotFound = errors.New("otp not found")
	ErrExpired  = errors.New("otp expired")
	ErrMismatch = errors.New("otp mismatch")
)

// Record is one outstanding code for a subject key.
type Record struct {
	Code      string
	ExpiresAt time.Time
}

// Store keeps at most one Record per subject key. Save overwrites any
// existing record for the key (last code wins).
type Store interface {
	Save(ctx context.Context, key string, rec Record) error
	Get(ctx context.Context, key string) (Record, error)
	Delete(ctx context.Context, key string) error
}

// Engine issues and verifies codes against a backing store.
type Engine struct {
	store Store
	clock clock.Clock
	ttl   time.Duration
}

func NewEngine(store Store, clk clock.Clock, ttl time.Duration) *Engine {
	return &Engine{store: store, clock: clk, ttl: ttl}
}

// Generate returns a uniform random six digit code.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue generates a code and stores it for the key, replacing any code
// already outstanding.
func (e *Engine) Issue(ctx context.Context, key string) (string, error) {
	code, err := Generate()
	if err != nil {
		return "", err
	}
	rec := Record{
		Code:      code,
		ExpiresAt: e.clock.Now().Add(e.ttl),
	}
	if err := e.store.Save(ctx, key, rec); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks the supplied code for the key. A successful verification
// consumes the record; an expired record is deleted as cleanup; a mismatch
// leaves the record intact so the subject may retry until expiry.
func (e *Engine) Verify(ctx context.Context, key, code string) error {
	rec, err := e.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if !rec.ExpiresAt.IsZero() && e.clock.Now().After(rec.ExpiresAt) {
		if err := e.store.Delete(ctx, key); err != nil {
			return err
		}
		return ErrExpired
	}
	if rec.Code != code {
		return ErrMismatch
	}
	return e.store.Delete(ctx, key)
}
