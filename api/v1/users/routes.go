// api/v1/users/routes.go
package users

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the routes that need no session. The
// public profile route still runs the optional JWT middleware so logged-in
// viewers are attributed on view events.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/profiles/:slug", h.GetPublicProfile)
	r.GET("/users/username-available", h.CheckUsername)
}

// RegisterProtectedRoutes registers the routes requiring a session
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	user := r.Group("/users")
	user.GET("/@me", h.GetCurrentUser)
	user.PATCH("/@me", h.UpdateProfile)
	user.GET("/@me/settings", h.GetSettings)
	user.PATCH("/@me/settings", h.UpdateSettings)
	user.GET("/@me/themes", h.GetThemes)
	user.PATCH("/@me/themes/:themeID", h.UpdateTheme)
	user.GET("/@me/qrcode", h.GetProfileQR)
}
