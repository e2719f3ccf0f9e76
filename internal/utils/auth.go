package utils

import (
  "errors"
  "fmt"
  "strings"
  "unicode"
  "unicode/utf8"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
)

const (
  MaxUsernameLength = 64
  // bcrypt ignores everything past 72 bytes.
  MaxPasswordBytes = 72
)

var ErrInvalidCredentialsInput = errors.New("invalid credentials input")

// NormalizeUsername trims surrounding whitespace; usernames are otherwise case sensitive.
func NormalizeUsername(username string) string {
  return strings.TrimSpace(username)
}

func ValidateRegistrationInput(username, password string, log *logger.Logger) error {
  //1) Check Username
  if username == "" {
    log.Warn("Username is empty, cannot register")
    return fmt.Errorf("a username is required to register: %w", ErrInvalidCredentialsInput)
  }
  if utf8.RuneCountInString(username) > MaxUsernameLength {
    log.Warn("Username too long, cannot register", "length", utf8.RuneCountInString(username))
    return fmt.Errorf("username longer than %d characters: %w", MaxUsernameLength, ErrInvalidCredentialsInput)
  }
  for _, r := range username {
    if unicode.IsControl(r) {
      log.Warn("Username contains control characters, cannot register")
      return fmt.Errorf("username contains control characters: %w", ErrInvalidCredentialsInput)
    }
  }

  //2) Check Password
  if password == "" {
    log.Warn("Password is empty, cannot register")
    return fmt.Errorf("a password is required to register: %w", ErrInvalidCredentialsInput)
  }
  if len(password) > MaxPasswordBytes {
    log.Warn("Password too long, cannot register")
    return fmt.Errorf("password longer than %d bytes: %w", MaxPasswordBytes, ErrInvalidCredentialsInput)
  }
  return nil
}
