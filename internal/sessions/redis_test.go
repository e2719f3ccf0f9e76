package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthmaai/asthmaai-backend/internal/logger"
)

func TestRedisStoreFailsFastWithoutServer(t *testing.T) {
	// port 1 is reserved and never serves redis
	_, err := NewRedisStore(logger.NewNop(), "127.0.0.1:1", "", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
}
