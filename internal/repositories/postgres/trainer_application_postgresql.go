package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fitlife-app/membership-service/internal/cache"
	"github.com/fitlife-app/membership-service/internal/models"
	"github.com/fitlife-app/membership-service/internal/repositories"
)

type TrainerApplicationPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewTrainerApplicationPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.TrainerApplicationRepository {
	return &TrainerApplicationPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (t *TrainerApplicationPostgreSQL) Create(ctx context.Context, app *models.TrainerApplication) error {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	if app.Role == "" {
		app.Role = models.RoleMember
	}
	if app.Status == "" {
		app.Status = models.StatusPending
	}

	if err := t.db.WithContext(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("failed to create trainer application: %w", err)
	}
	cache.InvalidateApplicationCache(ctx, t.cacheManager)

	return nil
}

func (t *TrainerApplicationPostgreSQL) GetByID(ctx context.Context, id string) (*models.TrainerApplication, error) {
	var app models.TrainerApplication
	err := t.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trainer application: %w", err)
	}
	return &app, nil
}

func (t *TrainerApplicationPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.TrainerApplication, error) {
	var app models.TrainerApplication
	err := t.db.WithContext(ctx).First(&app, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trainer application by email: %w", err)
	}
	return &app, nil
}

func (t *TrainerApplicationPostgreSQL) List(ctx context.Context) ([]*models.TrainerApplication, error) {
	var apps []*models.TrainerApplication

	err := t.cacheManager.Application.CacheOrExecute(ctx, "list:all", &apps, cache.ApplicationCacheConfig.TTL, func() (interface{}, error) {
		var dbApps []*models.TrainerApplication
		if err := t.db.WithContext(ctx).Order("created_at").Find(&dbApps).Error; err != nil {
			return nil, fmt.Errorf("failed to list trainer applications: %w", err)
		}
		return dbApps, nil
	})
	if err != nil {
		return nil, err
	}

	return apps, nil
}

// UpdateDecision records an approval or rejection outcome on the
// application record. Feedback is only written when provided.
func (t *TrainerApplicationPostgreSQL) UpdateDecision(ctx context.Context, id string, role models.Role, status models.ApplicationStatus, feedback *string) (repositories.UpdateResult, error) {
	updates := map[string]interface{}{
		"role":   role,
		"status": status,
	}
	if feedback != nil {
		updates["feedback"] = *feedback
	}

	tx := t.db.WithContext(ctx).Model(&models.TrainerApplication{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return repositories.UpdateResult{}, fmt.Errorf("failed to update trainer application: %w", tx.Error)
	}
	cache.InvalidateApplicationCache(ctx, t.cacheManager)

	return repositories.UpdateResult{MatchedCount: tx.RowsAffected, ModifiedCount: tx.RowsAffected}, nil
}

func (t *TrainerApplicationPostgreSQL) UpdateRole(ctx context.Context, id string, role models.Role) (repositories.UpdateResult, error) {
	tx := t.db.WithContext(ctx).Model(&models.TrainerApplication{}).Where("id = ?", id).Update("role", role)
	if tx.Error != nil {
		return repositories.UpdateResult{}, fmt.Errorf("failed to update trainer application role: %w", tx.Error)
	}
	cache.InvalidateApplicationCache(ctx, t.cacheManager)

	return repositories.UpdateResult{MatchedCount: tx.RowsAffected, ModifiedCount: tx.RowsAffected}, nil
}

func (t *TrainerApplicationPostgreSQL) Delete(ctx context.Context, id string) (repositories.DeleteResult, error) {
	tx := t.db.WithContext(ctx).Delete(&models.TrainerApplication{}, "id = ?", id)
	if tx.Error != nil {
		return repositories.DeleteResult{}, fmt.Errorf("failed to delete trainer application: %w", tx.Error)
	}
	cache.InvalidateApplicationCache(ctx, t.cacheManager)

	return repositories.DeleteResult{DeletedCount: tx.RowsAffected}, nil
}
