package services

import (
	"context"

	"github.com/fitlife-app/membership-service/internal/models"
	"github.com/fitlife-app/membership-service/internal/repositories"
	"github.com/fitlife-app/membership-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateUserRequest = validator.CreateUserRequest
type ApplyTrainerRequest = validator.ApplyTrainerRequest
type RejectTrainerRequest = validator.RejectTrainerRequest

// RegisterUserResult reports an idempotent registration outcome: either
// the inserted record, or an already-exists indication with a nil id.
type RegisterUserResult struct {
	User       *models.User `json:"user,omitempty"`
	InsertedID *string      `json:"insertedId"`
	Message    string       `json:"message,omitempty"`
	Created    bool         `json:"-"`
}

// ApplyResult reports an idempotent application submission outcome.
type ApplyResult struct {
	Application *models.TrainerApplication `json:"application,omitempty"`
	InsertedID  *string                    `json:"insertedId"`
	Message     string                     `json:"message,omitempty"`
	Created     bool                       `json:"-"`
}

// ===== SERVICE INTERFACES =====

// UserService handles user registration, role checks and administration.
type UserService interface {
	Register(ctx context.Context, req *CreateUserRequest) (*RegisterUserResult, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id string) (repositories.DeleteResult, error)
	PromoteToAdmin(ctx context.Context, id string) (repositories.UpdateResult, error)

	// IsAdmin / IsTrainer resolve the role from the store; a missing user
	// resolves to false, never an error.
	IsAdmin(ctx context.Context, email string) (bool, error)
	IsTrainer(ctx context.Context, email string) (bool, error)
}

// TrainerService drives the trainer application lifecycle:
// pending -> approved | rejected, with the approve decision mirrored onto
// the user record in the same transaction.
type TrainerService interface {
	Apply(ctx context.Context, req *ApplyTrainerRequest) (*ApplyResult, error)
	List(ctx context.Context) ([]*models.TrainerApplication, error)
	GetByID(ctx context.Context, id string) (*models.TrainerApplication, error)
	GetByEmail(ctx context.Context, email string) (*models.TrainerApplication, error)

	Approve(ctx context.Context, id string) (repositories.UpdateResult, error)
	Reject(ctx context.Context, id string, feedback string) (repositories.UpdateResult, error)

	// SetTrainerRole and DemoteRole are direct role writes on the
	// application record, outside the review flow.
	SetTrainerRole(ctx context.Context, id string) (repositories.UpdateResult, error)
	DemoteRole(ctx context.Context, id string) (repositories.UpdateResult, error)

	Purge(ctx context.Context, id string) (repositories.DeleteResult, error)
}

// ServiceManager aggregates all services with shared lifecycle management.
type ServiceManager interface {
	User() UserService
	Trainer() TrainerService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
