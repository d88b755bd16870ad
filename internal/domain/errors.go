package domain

import "errors"

var (
	// ErrPostNotFound is returned when the post does not exist or was deleted.
	ErrPostNotFound = errors.New("post not found or deleted")

	// ErrLoginRequired is returned when the post or profile needs an
	// authenticated session.
	ErrLoginRequired = errors.New("login required")

	// ErrConnection is returned on transient connection failures and is the
	// only error the download path retries.
	ErrConnection = errors.New("connection failure")

	// ErrInvalidInput is returned when the input is neither a recognizable
	// Instagram URL nor a username.
	ErrInvalidInput = errors.New("invalid instagram url or username")

	// ErrRateLimited is returned when rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrTaskNotFound is returned when polling an unknown download task.
	ErrTaskNotFound = errors.New("download task not found")
)
