package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"beelinks-api/internal/models"
)

// redisKeyForUser generates a Redis key for a cached user profile
func redisKeyForUser(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

// redisKeyForSettings generates a Redis key for cached user settings
func redisKeyForSettings(userID string) string {
	return fmt.Sprintf("profile:%s:settings", userID)
}

// cacheUser saves a user profile to Redis cache
func (s *Service) cacheUser(ctx context.Context, user *models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		s.logger.Errorf("Failed to marshal user for caching: %v", err)
		return ErrCacheError
	}

	err = s.redisClient.Set(ctx, redisKeyForUser(user.ID), string(userJSON), time.Hour)
	if err != nil {
		s.logger.Warnf("Failed to cache user profile: %v", err)
		return ErrCacheError
	}

	return nil
}

// getUserFromCache retrieves a user profile from Redis cache
func (s *Service) getUserFromCache(ctx context.Context, userID string) (*models.User, error) {
	userJSON, err := s.redisClient.Get(ctx, redisKeyForUser(userID))
	if err != nil || userJSON == "" {
		return nil, ErrUserNotFound
	}

	var user models.User
	err = json.Unmarshal([]byte(userJSON), &user)
	if err != nil {
		s.logger.Errorf("Failed to unmarshal cached user: %v", err)
		return nil, ErrCacheError
	}

	return &user, nil
}

// invalidateUserCache removes a user's cached profile and settings
func (s *Service) invalidateUserCache(ctx context.Context, userID string) {
	if _, err := s.redisClient.DeleteMany(ctx, redisKeyForUser(userID), redisKeyForSettings(userID)); err != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Warn("Failed to invalidate user cache")
	}
}

// cacheSettings saves a settings row to Redis cache
func (s *Service) cacheSettings(ctx context.Context, settings *models.UserSettings) {
	if err := s.redisClient.SetJSON(ctx, redisKeyForSettings(settings.UserID), settings, time.Hour); err != nil {
		s.logger.Warnf("Failed to cache user settings: %v", err)
	}
}

// getSettingsFromCache retrieves settings from Redis cache
func (s *Service) getSettingsFromCache(ctx context.Context, userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.redisClient.GetJSON(ctx, redisKeyForSettings(userID), &settings)
	if err != nil || settings.ID == "" {
		return nil, ErrSettingsNotFound
	}
	return &settings, nil
}
