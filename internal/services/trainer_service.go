package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/fitlife-app/membership-service/internal/events"
	"github.com/fitlife-app/membership-service/internal/models"
	"github.com/fitlife-app/membership-service/internal/repositories"
	"github.com/fitlife-app/membership-service/internal/validator"
)

type trainerService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTrainerService(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator) TrainerService {
	return &trainerService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Apply submits a trainer application for the member. A second submission
// for the same email is a no-op reporting "already exists"; the existing
// application keeps its state.
func (s *trainerService) Apply(ctx context.Context, req *ApplyTrainerRequest) (*ApplyResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.repo.TrainerApplication().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if existing != nil {
		s.logger.Debug("Apply no-op, application exists", "email", req.Email)
		return &ApplyResult{
			Message:    "user already exists",
			InsertedID: nil,
		}, nil
	}

	app := &models.TrainerApplication{
		Email:   req.Email,
		Name:    req.Name,
		Role:    models.RoleMember,
		Status:  models.StatusPending,
		Profile: datatypes.JSON(req.Profile),
	}
	if err := s.repo.TrainerApplication().Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.logger.Info("Trainer application submitted", "application_id", app.ID, "email", app.Email)
	s.publish(ctx, events.NewEvent(events.TypeApplicationSubmitted, events.ApplicationEvent{
		ApplicationID: app.ID,
		Email:         app.Email,
		Status:        string(models.StatusPending),
	}))

	return &ApplyResult{
		Application: app,
		InsertedID:  &app.ID,
		Created:     true,
	}, nil
}

func (s *trainerService) List(ctx context.Context) ([]*models.TrainerApplication, error) {
	return s.repo.TrainerApplication().List(ctx)
}

func (s *trainerService) GetByID(ctx context.Context, id string) (*models.TrainerApplication, error) {
	app, err := s.repo.TrainerApplication().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}
	return app, nil
}

func (s *trainerService) GetByEmail(ctx context.Context, email string) (*models.TrainerApplication, error) {
	app, err := s.repo.TrainerApplication().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}
	return app, nil
}

// Approve marks the application approved and mirrors role=trainer,
// status=approved onto the user record with the same email. Both writes
// run in one transaction: either both land or neither does.
func (s *trainerService) Approve(ctx context.Context, id string) (repositories.UpdateResult, error) {
	var result repositories.UpdateResult
	var applicantEmail string

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		app, err := txRepo.TrainerApplication().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if app == nil {
			// Zero matched: surfaced to the caller as a soft failure.
			result = repositories.UpdateResult{}
			return nil
		}
		applicantEmail = app.Email

		result, err = txRepo.TrainerApplication().UpdateDecision(ctx, id, models.RoleTrainer, models.StatusApproved, nil)
		if err != nil {
			return err
		}

		userResult, err := txRepo.User().UpdateRoleStatusByEmail(ctx, app.Email, models.RoleTrainer, models.StatusApproved)
		if err != nil {
			return err
		}
		if userResult.MatchedCount == 0 {
			return fmt.Errorf("no user record for applicant %s", app.Email)
		}

		return nil
	})
	if err != nil {
		return repositories.UpdateResult{}, fmt.Errorf("failed to approve application: %w", err)
	}

	if result.MatchedCount > 0 {
		s.logger.Info("Trainer application approved", "application_id", id, "email", applicantEmail)
		s.publish(ctx, events.NewEvent(events.TypeApplicationApproved, events.ApplicationEvent{
			ApplicationID: id,
			Email:         applicantEmail,
			Status:        string(models.StatusApproved),
		}))
	}

	return result, nil
}

// Reject records the reviewer feedback on the application and reverts the
// user's role to member in the same transaction, so a speculatively
// elevated role never survives a rejection.
func (s *trainerService) Reject(ctx context.Context, id string, feedback string) (repositories.UpdateResult, error) {
	req := RejectTrainerRequest{FeedbackText: feedback}
	if errs := s.validator.Validate(&req); len(errs) > 0 {
		return repositories.UpdateResult{}, errs
	}

	var result repositories.UpdateResult
	var applicantEmail string

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		app, err := txRepo.TrainerApplication().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if app == nil {
			result = repositories.UpdateResult{}
			return nil
		}
		applicantEmail = app.Email

		result, err = txRepo.TrainerApplication().UpdateDecision(ctx, id, models.RoleMember, models.StatusRejected, &feedback)
		if err != nil {
			return err
		}

		// The user may not exist anymore; a zero match here is fine.
		if _, err := txRepo.User().UpdateRoleStatusByEmail(ctx, app.Email, models.RoleMember, models.StatusRejected); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return repositories.UpdateResult{}, fmt.Errorf("failed to reject application: %w", err)
	}

	if result.MatchedCount > 0 {
		s.logger.Info("Trainer application rejected", "application_id", id, "email", applicantEmail)
		s.publish(ctx, events.NewEvent(events.TypeApplicationRejected, events.ApplicationEvent{
			ApplicationID: id,
			Email:         applicantEmail,
			Status:        string(models.StatusRejected),
			Feedback:      &feedback,
		}))
	}

	return result, nil
}

// SetTrainerRole writes role=trainer directly on the application record,
// bypassing review. Routing keeps this behind the admin gate.
func (s *trainerService) SetTrainerRole(ctx context.Context, id string) (repositories.UpdateResult, error) {
	result, err := s.repo.TrainerApplication().UpdateRole(ctx, id, models.RoleTrainer)
	if err != nil {
		return repositories.UpdateResult{}, err
	}
	if result.MatchedCount > 0 {
		s.publish(ctx, events.NewEvent(events.TypeUserRoleChanged, events.RoleChangedEvent{
			UserID: id,
			Role:   string(models.RoleTrainer),
		}))
	}
	return result, nil
}

// DemoteRole resets the application's role back to member.
func (s *trainerService) DemoteRole(ctx context.Context, id string) (repositories.UpdateResult, error) {
	result, err := s.repo.TrainerApplication().UpdateRole(ctx, id, models.RoleMember)
	if err != nil {
		return repositories.UpdateResult{}, err
	}
	if result.MatchedCount > 0 {
		s.publish(ctx, events.NewEvent(events.TypeUserRoleChanged, events.RoleChangedEvent{
			UserID: id,
			Role:   string(models.RoleMember),
		}))
	}
	return result, nil
}

// Purge removes an application record entirely (administrative only).
func (s *trainerService) Purge(ctx context.Context, id string) (repositories.DeleteResult, error) {
	return s.repo.TrainerApplication().Delete(ctx, id)
}

func (s *trainerService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "error", err, "type", event.Type)
	}
}
