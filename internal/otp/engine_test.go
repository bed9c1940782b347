package otp

import (
	"context"
	"testing"
	"time"

	"github.com/fixitworks/fixit/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(ttl time.Duration) (*Engine, *clock.FakeClock) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	return NewEngine(NewMemoryStore(), clk, ttl), clk
}

func TestGenerateSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.GreaterOrEqual(t, code, "100000")
		require.LessOrEqual(t, code, "999999")
	}
}

func TestVerifyConsumesCode(t *testing.T) {
	engine, _ := newTestEngine(5 * time.Minute)
	ctx := context.Background()

	code, err := engine.Issue(ctx, "+911234567890")
	require.NoError(t, err)

	require.NoError(t, engine.Verify(ctx, "+911234567890", code))

	err = engine.Verify(ctx, "+911234567890", code)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyMismatchKeepsCode(t *testing.T) {
	engine, _ := newTestEngine(5 * time.Minute)
	ctx := context.Background()

	code, err := engine.Issue(ctx, "key")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	assert.ErrorIs(t, engine.Verify(ctx, "key", wrong), ErrMismatch)

	// The outstanding code still verifies after a failed attempt.
	require.NoError(t, engine.Verify(ctx, "key", code))
}

func TestVerifyExpiredDeletesCode(t *testing.T) {
	engine, clk := newTestEngine(5 * time.Minute)
	ctx := context.Background()

	code, err := engine.Issue(ctx, "key")
	require.NoError(t, err)

	clk.Advance(5*time.Minute + time.Second)

	assert.ErrorIs(t, engine.Verify(ctx, "key", code), ErrExpired)
	// The expired record was removed, so a retry reports no request at all.
	assert.ErrorIs(t, engine.Verify(ctx, "key", code), ErrNotFound)
}

func TestIssueLastCodeWins(t *testing.T) {
	engine, _ := newTestEngine(5 * time.Minute)
	ctx := context.Background()

	first, err := engine.Issue(ctx, "key")
	require.NoError(t, err)
	second, err := engine.Issue(ctx, "key")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, engine.Verify(ctx, "key", first), ErrMismatch)
	}
	require.NoError(t, engine.Verify(ctx, "key", second))
}

func TestVerifyUnknownKey(t *testing.T) {
	engine, _ := newTestEngine(5 * time.Minute)
	assert.ErrorIs(t, engine.Verify(context.Background(), "missing", "123456"), ErrNotFound)
}
