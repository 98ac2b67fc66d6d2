package validator

import "encoding/json"

// TokenRequest is the identity claim submitted to the credential issuer.
// The caller's ownership of the email is trusted at this boundary.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=100"`
}

// CreateUserRequest registers a user on first sign-in.
type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=100"`
	Role  string `json:"role" validate:"omitempty,role"`
}

// ApplyTrainerRequest submits a trainer application.
type ApplyTrainerRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=100"`

	// Arbitrary applicant profile forwarded to the application record.
	Profile json.RawMessage `json:"profile" validate:"omitempty"`
}

// RejectTrainerRequest carries the reviewer feedback for a rejection.
type RejectTrainerRequest struct {
	FeedbackText string `json:"feedbackText" validate:"required,feedback"`
}
