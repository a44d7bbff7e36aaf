package link

import (
	"context"
	"time"

	"gorm.io/gorm"

	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
)

// NewRepository creates a new link repository
func NewRepository(database *gorm.DB) Repository {
	return &repo{
		database: database,
		linkRepo: db.NewRepositoryWithDB[models.Link](database),
		tagRepo:  db.NewRepositoryWithDB[models.LinkTag](database),
	}
}

// FindLink retrieves one link scoped to its owner
func (r *repo) FindLink(userID, linkID string) (*models.Link, error) {
	return r.linkRepo.FindOneWhere(context.Background(), "id = ? AND user_id = ?", linkID, userID)
}

// linkListOrder sorts by position with insertion order as the tie-break,
// since two rapid creates can land on the same position.
const linkListOrder = "position ASC, created_at ASC"

// FindLinksByUserID retrieves all links for a user ordered by position
func (r *repo) FindLinksByUserID(userID string) ([]models.Link, error) {
	var links []models.Link
	err := r.linkRepo.DB().
		Where("user_id = ?", userID).
		Order(linkListOrder).
		Find(&links).Error
	return links, err
}

// FindActiveLinksByUserID retrieves the links shown on the public profile
func (r *repo) FindActiveLinksByUserID(userID string) ([]models.Link, error) {
	var links []models.Link
	err := r.linkRepo.DB().
		Where("user_id = ? AND is_active = ?", userID, true).
		Order(linkListOrder).
		Find(&links).Error
	return links, err
}

// CreateLink inserts a new link
func (r *repo) CreateLink(link *models.Link) error {
	return r.linkRepo.Create(context.Background(), link)
}

// UpdateLink updates a link with built-in locking
func (r *repo) UpdateLink(link *models.Link) error {
	return r.linkRepo.Update(context.Background(), link)
}

// DeleteLink removes a link and its tag assignments, scoped to the owner
func (r *repo) DeleteLink(userID, linkID string) error {
	return db.WithTransaction(context.Background(), func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", linkID, userID).Delete(&models.Link{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("link_id = ?", linkID).Delete(&models.LinkTagAssignment{}).Error
	})
}

// MaxPosition returns the highest position among a user's links
func (r *repo) MaxPosition(userID string) (int, error) {
	var max *int
	err := r.linkRepo.DB().
		Model(&models.Link{}).
		Where("user_id = ?", userID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// ReorderLinks rewrites positions in a single transaction so a failed
// reorder never leaves a half-applied ordering
func (r *repo) ReorderLinks(ctx context.Context, userID string, orderedIDs []string) error {
	return db.WithTransaction(ctx, func(tx *gorm.DB) error {
		now := time.Now().Unix()
		for position, linkID := range orderedIDs {
			result := tx.Model(&models.Link{}).
				Where("id = ? AND user_id = ?", linkID, userID).
				Updates(map[string]interface{}{
					"position":   position,
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// CountEvents derives per-link counts of one event type from the
// analytics events
func (r *repo) CountEvents(linkIDs []string, eventType string) (map[string]int64, error) {
	counts := make(map[string]int64, len(linkIDs))
	if len(linkIDs) == 0 {
		return counts, nil
	}

	type row struct {
		LinkID string
		Count  int64
	}
	var rows []row

	err := r.database.
		Model(&models.LinkAnalyticsEvent{}).
		Select("link_id, COUNT(*) as count").
		Where("link_id IN ? AND event_type = ?", linkIDs, eventType).
		Group("link_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.LinkID] = r.Count
	}

	return counts, nil
}

// FindTagsByUserID retrieves all tags for a user
func (r *repo) FindTagsByUserID(userID string) ([]models.LinkTag, error) {
	return r.tagRepo.FindWhere(context.Background(), "user_id = ?", userID)
}

// FindTag retrieves one tag scoped to its owner
func (r *repo) FindTag(userID, tagID string) (*models.LinkTag, error) {
	return r.tagRepo.FindOneWhere(context.Background(), "id = ? AND user_id = ?", tagID, userID)
}

// CreateTag inserts a new tag
func (r *repo) CreateTag(tag *models.LinkTag) error {
	return r.tagRepo.Create(context.Background(), tag)
}

// DeleteTag removes a tag and its assignments, scoped to the owner
func (r *repo) DeleteTag(userID, tagID string) error {
	return db.WithTransaction(context.Background(), func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", tagID, userID).Delete(&models.LinkTag{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("tag_id = ?", tagID).Delete(&models.LinkTagAssignment{}).Error
	})
}

// FindTagsForLinks loads the tags assigned to each of the given links
func (r *repo) FindTagsForLinks(linkIDs []string) (map[string][]models.LinkTag, error) {
	result := make(map[string][]models.LinkTag, len(linkIDs))
	if len(linkIDs) == 0 {
		return result, nil
	}

	type row struct {
		models.LinkTag
		LinkID string
	}
	var rows []row

	err := r.database.
		Model(&models.LinkTag{}).
		Select("link_tags.*, link_tag_assignments.link_id").
		Joins("JOIN link_tag_assignments ON link_tag_assignments.tag_id = link_tags.id").
		Where("link_tag_assignments.link_id IN ?", linkIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		result[r.LinkID] = append(result[r.LinkID], r.LinkTag)
	}

	return result, nil
}

// ReplaceLinkTags swaps the tag set of a link in a single transaction
func (r *repo) ReplaceLinkTags(ctx context.Context, linkID string, tagIDs []string) error {
	return db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("link_id = ?", linkID).Delete(&models.LinkTagAssignment{}).Error; err != nil {
			return err
		}

		for _, tagID := range tagIDs {
			assignment := models.LinkTagAssignment{LinkID: linkID, TagID: tagID}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
