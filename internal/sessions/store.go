package sessions

import (
  "context"

  "github.com/asthmaai/asthmaai-backend/internal/types"
)

// SessionStore maps opaque session ids to users. Get returns nil for unknown
// or expired sessions.
type SessionStore interface {
  Create(ctx context.Context, userID int) (*types.Session, error)
  Get(ctx context.Context, id string) (*types.Session, error)
  Delete(ctx context.Context, id string) error
  Close() error
}

var (
  _ SessionStore = (*MemoryStore)(nil)
  _ SessionStore = (*RedisStore)(nil)
)
