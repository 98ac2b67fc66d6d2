package repositories

import "context"

// Repository aggregates all repository interfaces.
type Repository interface {
	User() UserRepository
	TrainerApplication() TrainerApplicationRepository

	// WithTransaction runs fn against a Repository bound to a single
	// transaction; fn returning an error rolls everything back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
