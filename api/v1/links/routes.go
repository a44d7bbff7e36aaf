// api/v1/links/routes.go
package links

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the click tracking route; it runs with
// the optional JWT middleware so logged-in viewers are attributed
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/links/:linkID/click", h.TrackClick)
}

// RegisterProtectedRoutes registers the routes requiring a session
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	linkGroup := r.Group("/links")
	linkGroup.GET("", h.GetLinks)
	linkGroup.POST("", h.CreateLink)
	linkGroup.PUT("/reorder", h.ReorderLinks)
	linkGroup.PATCH("/:linkID", h.UpdateLink)
	linkGroup.DELETE("/:linkID", h.DeleteLink)
	linkGroup.PUT("/:linkID/tags", h.SetLinkTags)

	tagGroup := r.Group("/tags")
	tagGroup.GET("", h.GetTags)
	tagGroup.POST("", h.CreateTag)
	tagGroup.DELETE("/:tagID", h.DeleteTag)
}
