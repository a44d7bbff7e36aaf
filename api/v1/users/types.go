package users

import (
	"beelinks-api/internal/analytics"
	"beelinks-api/internal/link"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/profile"
	"beelinks-api/internal/qrcode"
)

// Handler manages profile-related HTTP requests
type Handler struct {
	profileService   profile.ProfileService
	linkService      link.LinkService
	analyticsService analytics.AnalyticsService
	qrService        qrcode.QRService
	publicBaseURL    string
	logger           *logger.Logger
}
