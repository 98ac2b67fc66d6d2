package repositories

import (
	"context"

	"github.com/fitlife-app/membership-service/internal/models"
)

// UpdateResult mirrors the store's raw outcome of an update. A zero
// MatchedCount is a soft failure the caller inspects, not an error.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the store's raw outcome of a delete.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// UserRepository handles persistence for the users aggregate.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail returns (nil, nil) when no user exists for the email.
	// Gates interpret the absence as denial, never as a hard failure.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role) (UpdateResult, error)
	UpdateRoleStatusByEmail(ctx context.Context, email string, role models.Role, status models.ApplicationStatus) (UpdateResult, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
}

// TrainerApplicationRepository handles persistence for trainer applications.
type TrainerApplicationRepository interface {
	Create(ctx context.Context, app *models.TrainerApplication) error
	GetByID(ctx context.Context, id string) (*models.TrainerApplication, error)

	// GetByEmail returns (nil, nil) when no application exists for the email.
	GetByEmail(ctx context.Context, email string) (*models.TrainerApplication, error)

	List(ctx context.Context) ([]*models.TrainerApplication, error)
	UpdateDecision(ctx context.Context, id string, role models.Role, status models.ApplicationStatus, feedback *string) (UpdateResult, error)
	UpdateRole(ctx context.Context, id string, role models.Role) (UpdateResult, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
}
