package links

import (
	"beelinks-api/internal/analytics"
	"beelinks-api/internal/link"
	"beelinks-api/internal/logger"
)

// Handler manages link-related HTTP requests
type Handler struct {
	linkService      link.LinkService
	analyticsService analytics.AnalyticsService
	logger           *logger.Logger
}
