package memory

import (
	"testing"
	"time"

	"notes-api/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCacheSaveGetDelete(t *testing.T) {
	c := NewTokenCache(time.Minute)
	session := &dto.AuthSession{TokenId: 1, TokenHash: "abc", User: dto.UserDTO{Id: 9, Email: "a@b.c"}}

	c.Save(session)

	got, ok := c.Get("abc")
	require.True(t, ok)
	assert.Equal(t, uint(9), got.User.Id)

	got.User.Email = "mutated@example.com"
	again, _ := c.Get("abc")
	assert.Equal(t, "a@b.c", again.User.Email)

	c.Delete("abc")
	_, ok = c.Get("abc")
	assert.False(t, ok)
}

func TestTokenCacheExpires(t *testing.T) {
	c := NewTokenCache(20 * time.Millisecond)
	c.Save(&dto.AuthSession{TokenHash: "short"})

	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
}
