// api/v1/auth/routes.go
package auth

import (
	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")

	// Public routes - no authentication required
	authGroup.POST("/signup", h.HandleSignup)
	authGroup.POST("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers authentication routes requiring a session
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("")

	// Private routes - authentication required
	authGroup.POST("/refresh", h.HandleRefreshToken)
	authGroup.POST("/logout", h.HandleLogout)
}
