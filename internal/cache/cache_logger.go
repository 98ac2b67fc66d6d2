package cache

import (
	"context"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateUserCache invalidates the user listing caches after a
// membership write.
func InvalidateUserCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.User, "list:*")
}

// InvalidateApplicationCache invalidates the trainer application listing
// caches after a lifecycle transition.
func InvalidateApplicationCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Application, "list:*")
}
