package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionIsExpired(t *testing.T) {
	now := time.Now()

	t.Run("fresh session not expired", func(t *testing.T) {
		s := Session{MaxAge: DefaultCookieMaxAge, TimeCreated: now.Unix()}
		assert.False(t, s.IsExpired(now))
	})

	t.Run("old session expired", func(t *testing.T) {
		s := Session{MaxAge: 3, TimeCreated: now.Add(-5 * time.Second).Unix()}
		assert.True(t, s.IsExpired(now))
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		// (now - created) == maxAge → henüz süresi dolmamış
		s := Session{MaxAge: 10, TimeCreated: now.Add(-10 * time.Second).Unix()}
		assert.False(t, s.IsExpired(now))
	})
}
