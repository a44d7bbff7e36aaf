// api/v1/avatars/routes.go
package avatars

import (
	"github.com/gin-gonic/gin"
)

// RegisterProtectedRoutes registers the avatar routes
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	avatarGroup := r.Group("/avatars")
	avatarGroup.GET("", h.ListAvatars)
	avatarGroup.GET("/active", h.GetActiveAvatar)
	avatarGroup.POST("", h.UploadAvatar)
	avatarGroup.PUT("/:avatarID/activate", h.ActivateAvatar)
	avatarGroup.DELETE("/:avatarID", h.DeleteAvatar)
}
