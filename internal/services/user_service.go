package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fitlife-app/membership-service/internal/events"
	"github.com/fitlife-app/membership-service/internal/models"
	"github.com/fitlife-app/membership-service/internal/repositories"
	"github.com/fitlife-app/membership-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Register creates the user on first sign-in. A duplicate email is a
// no-op that reports "already exists" rather than an error.
func (s *userService) Register(ctx context.Context, req *CreateUserRequest) (*RegisterUserResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		s.logger.Debug("Register no-op, user exists", "email", req.Email)
		return &RegisterUserResult{
			Message:    "user already exists",
			InsertedID: nil,
		}, nil
	}

	role := models.RoleMember
	if req.Role != "" {
		role, err = models.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("Registered user", "user_id", user.ID, "email", user.Email)

	return &RegisterUserResult{
		User:       user,
		InsertedID: &user.ID,
		Created:    true,
	}, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.User().List(ctx)
}

// Delete removes a user permanently. The raw store outcome is surfaced;
// a repeat delete reports zero records affected.
func (s *userService) Delete(ctx context.Context, id string) (repositories.DeleteResult, error) {
	result, err := s.repo.User().Delete(ctx, id)
	if err != nil {
		return repositories.DeleteResult{}, err
	}

	if result.DeletedCount > 0 {
		s.logger.Info("Deleted user", "user_id", id)
		s.publish(ctx, events.NewEvent(events.TypeUserDeleted, events.UserDeletedEvent{UserID: id}))
	}

	return result, nil
}

func (s *userService) PromoteToAdmin(ctx context.Context, id string) (repositories.UpdateResult, error) {
	result, err := s.repo.User().UpdateRole(ctx, id, models.RoleAdmin)
	if err != nil {
		return repositories.UpdateResult{}, err
	}

	if result.MatchedCount > 0 {
		s.logger.Info("Promoted user to admin", "user_id", id)
		s.publish(ctx, events.NewEvent(events.TypeUserRoleChanged, events.RoleChangedEvent{
			UserID: id,
			Role:   string(models.RoleAdmin),
		}))
	}

	return result, nil
}

func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	return s.hasRole(ctx, email, models.RoleAdmin)
}

func (s *userService) IsTrainer(ctx context.Context, email string) (bool, error) {
	return s.hasRole(ctx, email, models.RoleTrainer)
}

func (s *userService) hasRole(ctx context.Context, email string, role models.Role) (bool, error) {
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return user.Role == role, nil
}

func (s *userService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "error", err, "type", event.Type)
	}
}
