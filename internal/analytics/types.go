package analytics

import (
	"context"

	"gorm.io/gorm"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
)

// AnalyticsService is the interface consumed by the analytics handlers
type AnalyticsService interface {
	TrackLinkClick(ctx context.Context, linkID string, visit VisitInfo) error
	TrackProfileView(ctx context.Context, userID string, visit VisitInfo) error
	GetUserStats(ctx context.Context, userID string) (*UserStats, error)
	GetLinkAnalytics(ctx context.Context, userID, linkID string) (*LinkAnalytics, error)
}

// Service implements AnalyticsService
type Service struct {
	repo   Repository
	logger *logger.Logger
}

// Repository defines the analytics repository interface
type Repository interface {
	FindLinkByID(linkID string) (*models.Link, error)
	GetAnalyticsEnabled(userID string) (bool, error)
	SaveClickEvent(event *models.LinkAnalyticsEvent) error
	SaveViewEvent(event *models.ProfileAnalyticsEvent) error

	CountClicksByUser(userID string) (int64, error)
	CountViewsByUser(userID string) (int64, error)
	CountLinksByUser(userID string) (int64, error)
	CountClicksSince(userID string, since int64) (int64, error)
	CountViewsSince(userID string, since int64) (int64, error)
	ClicksByDevice(userID string) (map[string]int64, error)

	CountClicksByLink(linkID string) (int64, error)
	RecentClicksByLink(linkID string, limit int) ([]models.LinkAnalyticsEvent, error)
	ClickBreakdownByLink(linkID, column string) (map[string]int64, error)
}

// VisitInfo carries the request metadata recorded on tracking events
type VisitInfo struct {
	UserAgent string
	Referrer  string

	// IPAddress is the client address as seen by the server. No geo
	// lookup happens on it; the country/city columns stay empty.
	IPAddress string

	// ViewerID is the authenticated user making the request, empty for
	// anonymous visits. Owner dashboard visits are tracked like any other.
	ViewerID string
}

// UserStats aggregates a user's dashboard numbers
type UserStats struct {
	TotalClicks    int64            `json:"totalClicks"`
	TotalViews     int64            `json:"totalViews"`
	TotalLinks     int64            `json:"totalLinks"`
	ClicksToday    int64            `json:"clicksToday"`
	ViewsToday     int64            `json:"viewsToday"`
	ClicksByDevice map[string]int64 `json:"clicksByDevice"`
}

// LinkAnalytics aggregates one link's event data
type LinkAnalytics struct {
	LinkID       string                      `json:"linkId"`
	TotalClicks  int64                       `json:"totalClicks"`
	ByDevice     map[string]int64            `json:"byDevice"`
	ByBrowser    map[string]int64            `json:"byBrowser"`
	ByOS         map[string]int64            `json:"byOs"`
	RecentClicks []models.LinkAnalyticsEvent `json:"recentClicks"`
}

// repo is the concrete implementation of Repository
type repo struct {
	database  *gorm.DB
	clickRepo db.Repository[models.LinkAnalyticsEvent]
	viewRepo  db.Repository[models.ProfileAnalyticsEvent]
}
