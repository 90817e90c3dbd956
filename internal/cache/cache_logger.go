package cache

import (
	"context"
	"fmt"
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

// BatchInvalidate invalidates multiple patterns in batch
func BatchInvalidate(ctx context.Context, helper *CacheHelper, patterns []string) error {
	var lastErr error
	for _, pattern := range patterns {
		if err := helper.InvalidatePattern(ctx, pattern); err != nil {
			lastErr = err
			slog.ErrorContext(ctx, "Failed to invalidate pattern in batch",
				"error", err,
				"pattern", pattern)
		}
	}
	return lastErr
}

// InvalidateTutorCache invalidates a tutor's cached record together with
// the directory listings that embed it.
func InvalidateTutorCache(ctx context.Context, cm *CacheManager, tutorID, email string) {
	SafeDelete(ctx, cm.User,
		fmt.Sprintf("id:%s", tutorID),
		fmt.Sprintf("email:%s", email))

	SafeInvalidatePattern(ctx, cm.Listing, "*")
}

// InvalidateSessionCache invalidates caches touched by a booking change.
func InvalidateSessionCache(ctx context.Context, cm *CacheManager, sessionID, studentID string) {
	SafeDelete(ctx, cm.Session, fmt.Sprintf("id:%s", sessionID))
	SafeInvalidatePattern(ctx, cm.Session, fmt.Sprintf("student:%s:*", studentID))
}

// InvalidateChatCache invalidates cached chat previews and messages.
func InvalidateChatCache(ctx context.Context, cm *CacheManager, chatID, ownerID string) {
	SafeDelete(ctx, cm.Chat, fmt.Sprintf("id:%s", chatID))
	SafeInvalidatePattern(ctx, cm.Chat, fmt.Sprintf("owner:%s:*", ownerID))
	SafeInvalidatePattern(ctx, cm.Chat, fmt.Sprintf("messages:%s:*", chatID))
}
