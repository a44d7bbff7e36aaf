package session

import (
	"beelinks-api/internal/models"
	"beelinks-api/pkg/db"
	"context"
	"errors"

	"gorm.io/gorm"
)

// NewRepository creates a new session repository
func NewRepository(database *gorm.DB) Repository {
	return &repo{
		sessionRepo: db.NewRepositoryWithDB[models.UserSession](database),
	}
}

// SaveSession creates or updates a session
func (r *repo) SaveSession(session *models.UserSession) error {
	// Check if session exists
	var existingSession models.UserSession
	err := r.sessionRepo.DB().Where(&models.UserSession{ID: session.ID}).First(&existingSession).Error

	if err == nil {
		// Update existing session
		return r.sessionRepo.Update(context.Background(), session)
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		// Create new session
		return r.sessionRepo.Create(context.Background(), session)
	} else {
		// Any other error
		return err
	}
}

// GetSession retrieves a session by ID
func (r *repo) GetSession(sessionID string) (*models.UserSession, error) {
	return r.sessionRepo.FindByID(context.Background(), sessionID)
}

// GetAllSessionsByUserID retrieves all sessions for a user ID
func (r *repo) GetAllSessionsByUserID(userID string) ([]*models.UserSession, error) {
	var sessions []*models.UserSession
	err := r.sessionRepo.DB().Where("user_id = ?", userID).Find(&sessions).Error
	return sessions, err
}

// UpdateSession updates a session
func (r *repo) UpdateSession(session *models.UserSession) error {
	return r.sessionRepo.Update(context.Background(), session)
}

// DeleteSession deletes a session
func (r *repo) DeleteSession(sessionID string) error {
	return r.sessionRepo.Delete(context.Background(), sessionID)
}
