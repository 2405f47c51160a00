package services

import "errors"

var (
	// ErrEmptyRequiredField is returned when a required input is empty after
	// trimming.
	ErrEmptyRequiredField = errors.New("required field is empty")

	// ErrNotAuthenticated is returned by operations that need a session token
	// when none is held.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUploadInProgress is returned when a second upload is started while
	// one is still running.
	ErrUploadInProgress = errors.New("upload already in progress")
)
