// api/v1/debug/routes.go
package debug

import (
	"github.com/gin-gonic/gin"
)

// RegisterProtectedRoutes registers the diagnostic routes
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	debugGroup := r.Group("/debug/profile")
	debugGroup.GET("/check", h.CheckProfile)
	debugGroup.POST("/sync", h.SyncProfile)
}
