package repository

import "errors"

// ErrRunNotFound is returned when no stored run matches the requested ID.
var ErrRunNotFound = errors.New("schedule run not found")
