package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitFromSentinel(t *testing.T) {
	assert.True(t, LimitFromSentinel(-1).IsUnlimited())
	assert.True(t, LimitFromSentinel(-42).IsUnlimited())
	assert.False(t, LimitFromSentinel(0).IsUnlimited())
	assert.False(t, LimitFromSentinel(10).IsUnlimited())
}

func TestLimitAllowsBoundary(t *testing.T) {
	limit := Capped(5)
	assert.True(t, limit.Allows(0))
	assert.True(t, limit.Allows(4), "one slot left must allow")
	assert.False(t, limit.Allows(5), "at the cap must deny")
	assert.False(t, limit.Allows(6))

	assert.False(t, Capped(0).Allows(0), "zero cap never allows")
	assert.True(t, Unlimited().Allows(1<<40))
}

func TestLimitValueRoundTrip(t *testing.T) {
	assert.Equal(t, UnlimitedSentinel, Unlimited().Value())
	assert.Equal(t, int64(7), Capped(7).Value())
	assert.Equal(t, int64(0), Capped(-3).Value(), "negative caps clamp to zero")
}
