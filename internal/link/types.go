package link

import (
	"context"

	"gorm.io/gorm"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
	"beelinks-api/pkg/redis"
)

// LinkService is the interface consumed by the link handlers
type LinkService interface {
	GetUserLinks(ctx context.Context, userID string) ([]LinkWithStats, error)
	GetPublicLinks(ctx context.Context, userID string) ([]LinkWithStats, error)
	CreateLink(ctx context.Context, userID string, input CreateLinkInput) (*models.Link, error)
	UpdateLink(ctx context.Context, userID, linkID string, input UpdateLinkInput) (*models.Link, error)
	DeleteLink(ctx context.Context, userID, linkID string) error
	ReorderLinks(ctx context.Context, userID string, orderedIDs []string) error

	GetTags(ctx context.Context, userID string) ([]models.LinkTag, error)
	CreateTag(ctx context.Context, userID string, name, color string) (*models.LinkTag, error)
	DeleteTag(ctx context.Context, userID, tagID string) error
	SetLinkTags(ctx context.Context, userID, linkID string, tagIDs []string) error
}

// RepairHook recreates the missing app-side records for an account. The
// link service calls it when an insert hits a missing owner row.
type RepairHook func(ctx context.Context, userID string) error

// Service implements LinkService
type Service struct {
	repo        Repository
	redisClient *redis.Client
	repair      RepairHook
	logger      *logger.Logger
}

// Repository defines the link repository interface
type Repository interface {
	FindLink(userID, linkID string) (*models.Link, error)
	FindLinksByUserID(userID string) ([]models.Link, error)
	FindActiveLinksByUserID(userID string) ([]models.Link, error)
	CreateLink(link *models.Link) error
	UpdateLink(link *models.Link) error
	DeleteLink(userID, linkID string) error
	MaxPosition(userID string) (int, error)
	ReorderLinks(ctx context.Context, userID string, orderedIDs []string) error
	CountEvents(linkIDs []string, eventType string) (map[string]int64, error)

	FindTagsByUserID(userID string) ([]models.LinkTag, error)
	FindTag(userID, tagID string) (*models.LinkTag, error)
	CreateTag(tag *models.LinkTag) error
	DeleteTag(userID, tagID string) error
	FindTagsForLinks(linkIDs []string) (map[string][]models.LinkTag, error)
	ReplaceLinkTags(ctx context.Context, linkID string, tagIDs []string) error
}

// LinkWithStats is a link decorated with its derived event counts and tags
type LinkWithStats struct {
	models.Link
	ClickCount int64            `json:"clickCount"`
	ViewCount  int64            `json:"viewCount"`
	TagList    []models.LinkTag `json:"tags"`
}

// CreateLinkInput carries link creation parameters
type CreateLinkInput struct {
	Title       string
	URL         string
	Description string
	Icon        string
	TagIDs      []string
}

// UpdateLinkInput carries the fields of a partial link update
type UpdateLinkInput struct {
	Title       *string
	URL         *string
	Description *string
	Icon        *string
	IsActive    *bool
}

// repo is the concrete implementation of Repository
type repo struct {
	database *gorm.DB
	linkRepo db.Repository[models.Link]
	tagRepo  db.Repository[models.LinkTag]
}
