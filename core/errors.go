package core

import "errors"

// ErrNotFound is a sentinel error for "not found" cases (channel, game,
// thread or message absent). Route handlers translate it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrWrongType is a sentinel error for channels that exist but lack the
// required capability (e.g. a voice channel where text is expected).
var ErrWrongType = errors.New("wrong channel type")

// ErrUnauthorized is a sentinel error for missing or invalid API credentials.
var ErrUnauthorized = errors.New("unauthorized")

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

// IsWrongTypeError checks if an error is a channel capability mismatch
func IsWrongTypeError(err error) bool {
	return err != nil && errors.Is(err, ErrWrongType)
}
