// api/v1/analytics/routes.go
package analytics

import (
	"github.com/gin-gonic/gin"
)

// RegisterProtectedRoutes registers the analytics routes
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	analyticsGroup := r.Group("/analytics")
	analyticsGroup.GET("/stats", h.GetStats)
	analyticsGroup.GET("/links/:linkID", h.GetLinkAnalytics)
}
