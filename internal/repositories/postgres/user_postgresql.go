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

type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Create inserts a new user and invalidates listing caches. The store
// assigns the id when the caller left it empty.
func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleMember
	}

	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager)

	return nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByEmail is the role resolution primitive behind every authorization
// gate. It always reads the source of truth; a missing user is (nil, nil),
// never an error.
func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// List returns all users, cached briefly since the admin roster view is
// read far more often than membership changes.
func (u *UserPostgreSQL) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User

	err := u.cacheManager.User.CacheOrExecute(ctx, "list:all", &users, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUsers []*models.User
		if err := u.db.WithContext(ctx).Order("created_at").Find(&dbUsers).Error; err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		return dbUsers, nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (u *UserPostgreSQL) UpdateRole(ctx context.Context, id string, role models.Role) (repositories.UpdateResult, error) {
	tx := u.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if tx.Error != nil {
		return repositories.UpdateResult{}, fmt.Errorf("failed to update user role: %w", tx.Error)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager)

	return repositories.UpdateResult{MatchedCount: tx.RowsAffected, ModifiedCount: tx.RowsAffected}, nil
}

func (u *UserPostgreSQL) UpdateRoleStatusByEmail(ctx context.Context, email string, role models.Role, status models.ApplicationStatus) (repositories.UpdateResult, error) {
	tx := u.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Updates(map[string]interface{}{
		"role":   role,
		"status": status,
	})
	if tx.Error != nil {
		return repositories.UpdateResult{}, fmt.Errorf("failed to update user role and status: %w", tx.Error)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager)

	return repositories.UpdateResult{MatchedCount: tx.RowsAffected, ModifiedCount: tx.RowsAffected}, nil
}

// Delete removes the user permanently. A repeat delete reports a zero
// count rather than an error.
func (u *UserPostgreSQL) Delete(ctx context.Context, id string) (repositories.DeleteResult, error) {
	tx := u.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if tx.Error != nil {
		return repositories.DeleteResult{}, fmt.Errorf("failed to delete user: %w", tx.Error)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager)

	return repositories.DeleteResult{DeletedCount: tx.RowsAffected}, nil
}
