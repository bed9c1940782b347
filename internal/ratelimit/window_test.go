package ratelimit

import (
	"testing"
	"time"

	"github.com/fixitworks/fixit/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestAllowWithinLimit(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	l := NewLimiter(3, time.Minute, clk)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("+911111111111"))
	}
	assert.False(t, l.Allow("+911111111111"))
}

func TestAllowIndependentKeys(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	l := NewLimiter(1, time.Minute, clk)

	assert.True(t, l.Allow("a@example.com"))
	assert.False(t, l.Allow("a@example.com"))
	assert.True(t, l.Allow("b@example.com"))
}

func TestAllowResetsAfterWindow(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	l := NewLimiter(1, time.Minute, clk)

	assert.True(t, l.Allow("key"))
	assert.False(t, l.Allow("key"))

	clk.Advance(time.Minute)
	assert.True(t, l.Allow("key"))
}
