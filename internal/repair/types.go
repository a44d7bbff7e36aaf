package repair

import (
	"context"

	"gorm.io/gorm"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/internal/profile"
)

// RepairService is the interface consumed by the debug handlers
type RepairService interface {
	CheckCurrentUser(ctx context.Context, userID string) (*ProfileStatus, error)
	SyncCurrentUser(ctx context.Context, userID string) (*SyncReport, error)
}

// Service implements RepairService. It runs its writes on a dedicated
// connection so a service-level credential can bypass the row-level
// policies that block ordinary inserts into other users' rows.
type Service struct {
	database       *gorm.DB
	profileService profile.ProfileService
	logger         *logger.Logger
}

// ProfileStatus reports which denormalized records exist for an account
type ProfileStatus struct {
	UserID         string `json:"userId"`
	IdentityExists bool   `json:"identityExists"`
	UserExists     bool   `json:"userExists"`
	SettingsExist  bool   `json:"settingsExist"`
	ThemeExists    bool   `json:"themeExists"`
	Consistent     bool   `json:"consistent"`
}

// StepStatus is the outcome of one repair step.
const (
	StepCreated = "created"
	StepSkipped = "already_present"
	StepFailed  = "failed"
)

// SyncStep reports the outcome of one repair step
type SyncStep struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SyncReport is the full outcome of a repair run
type SyncReport struct {
	UserID   string         `json:"userId"`
	Repaired bool           `json:"repaired"`
	Steps    []SyncStep     `json:"steps"`
	After    *ProfileStatus `json:"after"`
}

// identitySnapshot is what repair reads from the auth side
type identitySnapshot struct {
	identity *models.AuthIdentity
	metadata models.SignUpMetadata
}
