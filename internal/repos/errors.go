package repos

import (
    "errors"
)

var (
    // ErrUserNotFound is returned when a record references a user that does not exist.
    ErrUserNotFound = errors.New("user not found")
    ErrUsernameTaken = errors.New("username already exists")
)
