package types

import (
  "time"
)

// Session associates an opaque id with a user until ExpiresAt.
type Session struct {
  ID          string          `json:"id"`
  UserID      int             `json:"userId"`
  ExpiresAt   time.Time       `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
  return !now.Before(s.ExpiresAt)
}
