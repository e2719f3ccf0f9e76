package services

import (
  "errors"
  "time"
)

var (
  ErrInvalidInput = errors.New("invalid input")
  ErrInvalidCredentials = errors.New("invalid username or password")
  ErrUnauthenticated = errors.New("not authenticated")
)

// timestampLayout matches JavaScript's Date.prototype.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func FormatTimestamp(t time.Time) string {
  return t.UTC().Format(timestampLayout)
}
