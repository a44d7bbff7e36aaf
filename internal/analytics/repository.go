package analytics

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
)

// NewRepository creates a new analytics repository
func NewRepository(database *gorm.DB) Repository {
	return &repo{
		database:  database,
		clickRepo: db.NewRepositoryWithDB[models.LinkAnalyticsEvent](database),
		viewRepo:  db.NewRepositoryWithDB[models.ProfileAnalyticsEvent](database),
	}
}

// FindLinkByID retrieves a link regardless of owner
func (r *repo) FindLinkByID(linkID string) (*models.Link, error) {
	var link models.Link
	err := r.database.Where("id = ?", linkID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetAnalyticsEnabled reports whether the profile owner has analytics on.
// A missing settings row counts as enabled, matching the column default.
func (r *repo) GetAnalyticsEnabled(userID string) (bool, error) {
	var settings models.UserSettings
	err := r.database.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}
	return settings.AnalyticsEnabled, nil
}

// SaveClickEvent inserts a click event
func (r *repo) SaveClickEvent(event *models.LinkAnalyticsEvent) error {
	return r.clickRepo.Create(context.Background(), event)
}

// SaveViewEvent inserts a profile view event
func (r *repo) SaveViewEvent(event *models.ProfileAnalyticsEvent) error {
	return r.viewRepo.Create(context.Background(), event)
}

// CountClicksByUser counts all click events across a user's links
func (r *repo) CountClicksByUser(userID string) (int64, error) {
	var count int64
	err := r.database.Model(&models.LinkAnalyticsEvent{}).
		Where("user_id = ? AND event_type = ?", userID, models.EventClick).
		Count(&count).Error
	return count, err
}

// CountViewsByUser counts all profile view events for a user
func (r *repo) CountViewsByUser(userID string) (int64, error) {
	var count int64
	err := r.database.Model(&models.ProfileAnalyticsEvent{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountLinksByUser counts the user's links
func (r *repo) CountLinksByUser(userID string) (int64, error) {
	var count int64
	err := r.database.Model(&models.Link{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountClicksSince counts click events recorded at or after a timestamp
func (r *repo) CountClicksSince(userID string, since int64) (int64, error) {
	var count int64
	err := r.database.Model(&models.LinkAnalyticsEvent{}).
		Where("user_id = ? AND event_type = ? AND occurred_at >= ?", userID, models.EventClick, since).
		Count(&count).Error
	return count, err
}

// CountViewsSince counts view events recorded at or after a timestamp
func (r *repo) CountViewsSince(userID string, since int64) (int64, error) {
	var count int64
	err := r.database.Model(&models.ProfileAnalyticsEvent{}).
		Where("user_id = ? AND viewed_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

// ClicksByDevice groups a user's click events by device type
func (r *repo) ClicksByDevice(userID string) (map[string]int64, error) {
	type row struct {
		DeviceType string
		Count      int64
	}
	var rows []row

	err := r.database.Model(&models.LinkAnalyticsEvent{}).
		Select("device_type, COUNT(*) as count").
		Where("user_id = ? AND event_type = ?", userID, models.EventClick).
		Group("device_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.DeviceType] = r.Count
	}
	return result, nil
}

// CountClicksByLink counts the click events of one link
func (r *repo) CountClicksByLink(linkID string) (int64, error) {
	var count int64
	err := r.database.Model(&models.LinkAnalyticsEvent{}).
		Where("link_id = ? AND event_type = ?", linkID, models.EventClick).
		Count(&count).Error
	return count, err
}

// RecentClicksByLink returns the newest click events of one link
func (r *repo) RecentClicksByLink(linkID string, limit int) ([]models.LinkAnalyticsEvent, error) {
	var events []models.LinkAnalyticsEvent
	err := r.database.
		Where("link_id = ? AND event_type = ?", linkID, models.EventClick).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// ClickBreakdownByLink groups one link's clicks by the given column
// (device_type, browser or os)
func (r *repo) ClickBreakdownByLink(linkID, column string) (map[string]int64, error) {
	type row struct {
		Value string
		Count int64
	}
	var rows []row

	err := r.database.Model(&models.LinkAnalyticsEvent{}).
		Select(column+" as value, COUNT(*) as count").
		Where("link_id = ? AND event_type = ?", linkID, models.EventClick).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Value] = r.Count
	}
	return result, nil
}
