package analytics

import (
	"beelinks-api/internal/analytics"
	"beelinks-api/internal/logger"
)

// Handler manages analytics-related HTTP requests
type Handler struct {
	analyticsService analytics.AnalyticsService
	logger           *logger.Logger
}
