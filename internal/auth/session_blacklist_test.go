package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBlacklistAddAndCheck(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	blacklisted, err := store.IsBlacklisted("token-a")
	assert.NoError(t, err)
	assert.False(t, blacklisted)

	assert.NoError(t, store.AddToBlacklist("token-a", time.Now().Add(time.Hour)))

	blacklisted, err = store.IsBlacklisted("token-a")
	assert.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestBlacklistCleanUpExpired(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	assert.NoError(t, store.AddToBlacklist("expired", time.Now().Add(-time.Minute)))
	assert.NoError(t, store.AddToBlacklist("alive", time.Now().Add(time.Hour)))

	store.CleanUpExpired()

	expired, _ := store.IsBlacklisted("expired")
	assert.False(t, expired)

	alive, _ := store.IsBlacklisted("alive")
	assert.True(t, alive)
}
