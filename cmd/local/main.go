// Command local runs the account-free BeeLinks variant: a single-user
// dashboard server backed by a JSON file instead of Postgres. No auth, no
// sessions; everything belongs to the one local profile.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"beelinks-api/internal/localstore"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupGracefulShutdown(cancel)

	storePath := os.Getenv("LOCAL_STORE_PATH")
	if storePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		storePath = filepath.Join(home, ".beelinks", "store.json")
	}

	store, err := localstore.Open(storePath)
	if err != nil {
		log.Fatalf("Failed to open local store at %s: %v", storePath, err)
	}
	log.Printf("Local store at %s", storePath)

	// Log store changes the way the server variant logs auth events
	go consumeChanges(ctx, store)

	port := os.Getenv("LOCAL_PORT")
	if port == "" {
		port = "3001"
	}

	srv := &http.Server{
		Addr:    "127.0.0.1:" + port,
		Handler: setupRouter(store),
	}

	go func() {
		log.Printf("Local server started on 127.0.0.1:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down local server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// setupRouter registers the dashboard endpoints over the file store
func setupRouter(store *localstore.Store) *gin.Engine {
	r := gin.Default()
	h := &handlers{store: store}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/links", h.getLinks)
	api.POST("/links", h.createLink)
	api.PATCH("/links/:linkID", h.updateLink)
	api.DELETE("/links/:linkID", h.deleteLink)
	api.POST("/links/:linkID/click", h.recordClick)
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.saveProfile)
	api.GET("/theme", h.getTheme)
	api.PUT("/theme", h.saveTheme)
	api.GET("/stats", h.getStats)
	api.POST("/views", h.recordView)

	return r
}

type handlers struct {
	store *localstore.Store
}

// linkRequest carries link create/update fields; blanks are left untouched
// on update
type linkRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// getLinks lists links with optional ?q= search and ?sort=date|clicks
func (h *handlers) getLinks(c *gin.Context) {
	links, err := h.store.SearchLinks(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	links = localstore.SortLinks(links, c.Query("sort"))
	c.JSON(http.StatusOK, gin.H{"links": links})
}

func (h *handlers) createLink(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := h.store.AddLink(req.Title, req.URL, req.Description)
	if err != nil {
		c.JSON(localErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"link": created})
}

func (h *handlers) updateLink(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := h.store.UpdateLink(c.Param("linkID"), req.Title, req.URL, req.Description)
	if err != nil {
		c.JSON(localErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": updated})
}

func (h *handlers) deleteLink(c *gin.Context) {
	if err := h.store.RemoveLink(c.Param("linkID")); err != nil {
		c.JSON(localErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Link removed"})
}

func (h *handlers) recordClick(c *gin.Context) {
	if err := h.store.RecordClick(c.Param("linkID")); err != nil {
		c.JSON(localErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Click recorded"})
}

func (h *handlers) getProfile(c *gin.Context) {
	profile, err := h.store.Profile()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *handlers) saveProfile(c *gin.Context) {
	var profile localstore.LocalProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.store.SaveProfile(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *handlers) getTheme(c *gin.Context) {
	theme, err := h.store.Theme()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

func (h *handlers) saveTheme(c *gin.Context) {
	var theme localstore.LocalTheme
	if err := c.ShouldBindJSON(&theme); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.store.SaveTheme(theme); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

func (h *handlers) getStats(c *gin.Context) {
	stats, err := h.store.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *handlers) recordView(c *gin.Context) {
	if err := h.store.RecordView(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "View recorded"})
}

// localErrorStatus maps store errors onto HTTP codes
func localErrorStatus(err error) int {
	switch {
	case errors.Is(err, localstore.ErrLinkNotFound):
		return http.StatusNotFound
	case errors.Is(err, localstore.ErrInvalidTitle), errors.Is(err, localstore.ErrInvalidURL):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// consumeChanges logs store mutations until shutdown
func consumeChanges(ctx context.Context, store *localstore.Store) {
	events, unsubscribe := store.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			log.Printf("Store key %s changed", event.Key)
		}
	}
}

// setupGracefulShutdown sets up signal handling for graceful shutdown
func setupGracefulShutdown(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Received shutdown signal")
		cancel()
	}()
}
