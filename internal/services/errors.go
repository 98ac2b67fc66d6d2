package services

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist. Updates
	// and deletes never return it; they surface zero-count results instead.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden indicates the acting identity lacks the required role.
	ErrForbidden = errors.New("forbidden")
)
