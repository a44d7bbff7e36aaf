package avatars

import (
	"beelinks-api/internal/avatar"
	"beelinks-api/internal/logger"
)

// Handler manages avatar-related HTTP requests
type Handler struct {
	avatarService avatar.AvatarService
	logger        *logger.Logger
}
