package link

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/pkg/redis"
)

// NewService creates a new link service. The repair hook may be nil, in
// which case a missing owner row is surfaced without an automatic repair.
func NewService(repo Repository, redisClient *redis.Client, repair RepairHook, logger *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		redisClient: redisClient,
		repair:      repair,
		logger:      logger,
	}
}

// GetUserLinks returns all of the user's links with derived click counts
// and assigned tags, ordered by position
func (s *Service) GetUserLinks(ctx context.Context, userID string) ([]LinkWithStats, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	links, err := s.repo.FindLinksByUserID(userID)
	if err != nil {
		return nil, ErrDatabaseError
	}

	return s.decorateLinks(links)
}

// GetPublicLinks returns only the active links, for public profile pages
func (s *Service) GetPublicLinks(ctx context.Context, userID string) ([]LinkWithStats, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	links, err := s.repo.FindActiveLinksByUserID(userID)
	if err != nil {
		return nil, ErrDatabaseError
	}

	return s.decorateLinks(links)
}

// decorateLinks attaches click and view counts and tags to the given links
func (s *Service) decorateLinks(links []models.Link) ([]LinkWithStats, error) {
	linkIDs := make([]string, 0, len(links))
	for _, l := range links {
		linkIDs = append(linkIDs, l.ID)
	}

	clicks, err := s.repo.CountEvents(linkIDs, models.EventClick)
	if err != nil {
		return nil, ErrDatabaseError
	}

	views, err := s.repo.CountEvents(linkIDs, models.EventView)
	if err != nil {
		return nil, ErrDatabaseError
	}

	tags, err := s.repo.FindTagsForLinks(linkIDs)
	if err != nil {
		return nil, ErrDatabaseError
	}

	result := make([]LinkWithStats, 0, len(links))
	for _, l := range links {
		tagList := tags[l.ID]
		if tagList == nil {
			tagList = []models.LinkTag{}
		}
		result = append(result, LinkWithStats{
			Link:       l,
			ClickCount: clicks[l.ID],
			ViewCount:  views[l.ID],
			TagList:    tagList,
		})
	}

	return result, nil
}

// CreateLink validates, normalizes and inserts a new link at the end of
// the user's list. A foreign key violation triggers the repair hook and
// one retry; if the row is still missing it is surfaced as
// ErrMissingOwnerRecord so callers can point at the repair flow.
func (s *Service) CreateLink(ctx context.Context, userID string, input CreateLinkInput) (*models.Link, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	normalized := NormalizeURL(input.URL)
	if err := validateURL(normalized); err != nil {
		return nil, err
	}

	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = defaultDescription
	}

	icon := input.Icon
	if icon == "" {
		icon = DetectIcon(normalized)
	}

	maxPos, err := s.repo.MaxPosition(userID)
	if err != nil {
		return nil, ErrDatabaseError
	}

	link := &models.Link{
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		URL:         normalized,
		Description: description,
		Icon:        icon,
		Position:    maxPos + 1,
		IsActive:    true,
	}

	if err := s.insertWithRepair(ctx, userID, link); err != nil {
		return nil, err
	}

	if len(input.TagIDs) > 0 {
		if err := s.SetLinkTags(ctx, userID, link.ID, input.TagIDs); err != nil {
			return nil, err
		}
	}

	return link, nil
}

// insertWithRepair inserts a link. When the insert hits a foreign key
// violation the users row for this account is missing: the identity exists
// but the profile insert never happened. The repair hook recreates it and
// the insert is retried exactly once; no other operation retries.
func (s *Service) insertWithRepair(ctx context.Context, userID string, link *models.Link) error {
	err := s.repo.CreateLink(link)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Error("Failed to create link")
		return ErrDatabaseError
	}

	if s.repair == nil {
		return ErrMissingOwnerRecord
	}

	s.logger.WithFields(logrus.Fields{"userID": userID}).Warn("Link insert hit a missing owner row, repairing")
	if repairErr := s.repair(ctx, userID); repairErr != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": repairErr}).Error("Owner repair failed")
		return ErrMissingOwnerRecord
	}

	if err := s.repo.CreateLink(link); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrMissingOwnerRecord
		}
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Error("Failed to create link after repair")
		return ErrDatabaseError
	}

	return nil
}

// UpdateLink applies a partial update to a link, scoped to its owner
func (s *Service) UpdateLink(ctx context.Context, userID, linkID string, input UpdateLinkInput) (*models.Link, error) {
	if userID == "" || linkID == "" {
		return nil, ErrInvalidInput
	}

	link, err := s.repo.FindLink(userID, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, ErrDatabaseError
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		link.Title = strings.TrimSpace(*input.Title)
	}

	if input.URL != nil {
		normalized := NormalizeURL(*input.URL)
		if err := validateURL(normalized); err != nil {
			return nil, err
		}
		link.URL = normalized
		// Re-detect the icon unless the caller pins one explicitly
		if input.Icon == nil {
			link.Icon = DetectIcon(normalized)
		}
	}

	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			description = defaultDescription
		}
		link.Description = description
	}

	if input.Icon != nil {
		link.Icon = *input.Icon
	}

	if input.IsActive != nil {
		link.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateLink(link); err != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "linkID": linkID, "error": err}).Error("Failed to update link")
		return nil, ErrDatabaseError
	}

	return link, nil
}

// DeleteLink removes a link, scoped to its owner
func (s *Service) DeleteLink(ctx context.Context, userID, linkID string) error {
	if userID == "" || linkID == "" {
		return ErrInvalidInput
	}

	err := s.repo.DeleteLink(userID, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		s.logger.WithFields(logrus.Fields{"userID": userID, "linkID": linkID, "error": err}).Error("Failed to delete link")
		return ErrDatabaseError
	}

	return nil
}

// ReorderLinks rewrites the user's link ordering. The ordered list must
// cover exactly the user's links.
func (s *Service) ReorderLinks(ctx context.Context, userID string, orderedIDs []string) error {
	if userID == "" || len(orderedIDs) == 0 {
		return ErrInvalidInput
	}

	existing, err := s.repo.FindLinksByUserID(userID)
	if err != nil {
		return ErrDatabaseError
	}

	if len(existing) != len(orderedIDs) {
		return ErrReorderMismatch
	}

	known := make(map[string]bool, len(existing))
	for _, l := range existing {
		known[l.ID] = true
	}
	for _, id := range orderedIDs {
		if !known[id] {
			return ErrReorderMismatch
		}
	}

	if err := s.repo.ReorderLinks(ctx, userID, orderedIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReorderMismatch
		}
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Error("Failed to reorder links")
		return ErrDatabaseError
	}

	return nil
}

// GetTags returns all tags owned by the user
func (s *Service) GetTags(ctx context.Context, userID string) ([]models.LinkTag, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	tags, err := s.repo.FindTagsByUserID(userID)
	if err != nil {
		return nil, ErrDatabaseError
	}

	return tags, nil
}

// CreateTag inserts a new tag for the user
func (s *Service) CreateTag(ctx context.Context, userID string, name, color string) (*models.LinkTag, error) {
	if userID == "" || strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}

	tag := &models.LinkTag{
		UserID: userID,
		Name:   strings.TrimSpace(name),
		Color:  color,
	}

	if err := s.repo.CreateTag(tag); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrMissingOwnerRecord
		}
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Error("Failed to create tag")
		return nil, ErrDatabaseError
	}

	return tag, nil
}

// DeleteTag removes a tag, scoped to its owner
func (s *Service) DeleteTag(ctx context.Context, userID, tagID string) error {
	if userID == "" || tagID == "" {
		return ErrInvalidInput
	}

	err := s.repo.DeleteTag(userID, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		s.logger.WithFields(logrus.Fields{"userID": userID, "tagID": tagID, "error": err}).Error("Failed to delete tag")
		return ErrDatabaseError
	}

	return nil
}

// SetLinkTags replaces the tag set of a link. All tags must belong to the
// same user as the link.
func (s *Service) SetLinkTags(ctx context.Context, userID, linkID string, tagIDs []string) error {
	if userID == "" || linkID == "" {
		return ErrInvalidInput
	}

	if _, err := s.repo.FindLink(userID, linkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		return ErrDatabaseError
	}

	for _, tagID := range tagIDs {
		if _, err := s.repo.FindTag(userID, tagID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return ErrDatabaseError
		}
	}

	if err := s.repo.ReplaceLinkTags(ctx, linkID, tagIDs); err != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "linkID": linkID, "error": err}).Error("Failed to set link tags")
		return ErrDatabaseError
	}

	return nil
}
