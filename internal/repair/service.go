package repair

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"beelinks-api/internal/auth"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/internal/profile"
	"beelinks-api/pkg/config"
	"beelinks-api/pkg/db"
)

// NewService creates a new repair service. When a service DSN is configured
// a dedicated elevated connection is opened for the repair writes; otherwise
// the shared pool is used.
func NewService(database *gorm.DB, cfg *config.RepairConfig, profileService profile.ProfileService, logger *logger.Logger) (*Service, error) {
	conn := database
	if cfg != nil && cfg.ServiceDSN != "" {
		serviceConn, err := db.OpenWithDSN(cfg.ServiceDSN)
		if err != nil {
			return nil, err
		}
		conn = serviceConn
		logger.Info("Repair service using dedicated service connection")
	}

	return &Service{
		database:       conn,
		profileService: profileService,
		logger:         logger,
	}, nil
}

// CheckCurrentUser inspects which records exist for the account without
// changing anything
func (s *Service) CheckCurrentUser(ctx context.Context, userID string) (*ProfileStatus, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	status := &ProfileStatus{UserID: userID}

	var err error
	if status.IdentityExists, err = s.rowExists(ctx, &models.AuthIdentity{}, "id = ?", userID); err != nil {
		return nil, ErrDatabaseError
	}
	if status.UserExists, err = s.rowExists(ctx, &models.User{}, "id = ?", userID); err != nil {
		return nil, ErrDatabaseError
	}
	if status.SettingsExist, err = s.rowExists(ctx, &models.UserSettings{}, "user_id = ?", userID); err != nil {
		return nil, ErrDatabaseError
	}
	if status.ThemeExists, err = s.rowExists(ctx, &models.Theme{}, "user_id = ?", userID); err != nil {
		return nil, ErrDatabaseError
	}

	status.Consistent = status.IdentityExists && status.UserExists && status.SettingsExist && status.ThemeExists

	return status, nil
}

// SyncCurrentUser recreates whatever app-side records are missing for the
// account. All inserts run in one transaction so a partial repair never
// makes the inconsistency worse.
func (s *Service) SyncCurrentUser(ctx context.Context, userID string) (*SyncReport, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	before, err := s.CheckCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{UserID: userID}

	if !before.IdentityExists {
		return nil, ErrIdentityNotFound
	}

	if before.Consistent {
		report.Steps = append(report.Steps,
			SyncStep{Name: "user", Status: StepSkipped},
			SyncStep{Name: "settings", Status: StepSkipped},
			SyncStep{Name: "theme", Status: StepSkipped},
		)
		report.After = before
		return report, nil
	}

	snapshot, err := s.loadIdentity(ctx, userID)
	if err != nil {
		return nil, err
	}

	txErr := s.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !before.UserExists {
			user, err := s.buildUser(ctx, snapshot)
			if err != nil {
				return err
			}
			if err := tx.Create(user).Error; err != nil {
				report.Steps = append(report.Steps, SyncStep{Name: "user", Status: StepFailed, Error: err.Error()})
				return err
			}
			report.Steps = append(report.Steps, SyncStep{Name: "user", Status: StepCreated})
		} else {
			report.Steps = append(report.Steps, SyncStep{Name: "user", Status: StepSkipped})
		}

		var themeID string
		if !before.ThemeExists {
			theme := auth.DefaultTheme()
			theme.UserID = userID
			if err := tx.Create(theme).Error; err != nil {
				report.Steps = append(report.Steps, SyncStep{Name: "theme", Status: StepFailed, Error: err.Error()})
				return err
			}
			themeID = theme.ID
			report.Steps = append(report.Steps, SyncStep{Name: "theme", Status: StepCreated})
		} else {
			report.Steps = append(report.Steps, SyncStep{Name: "theme", Status: StepSkipped})
		}

		if !before.SettingsExist {
			settings := auth.DefaultSettings()
			settings.UserID = userID
			if themeID != "" {
				settings.ActiveThemeID = &themeID
			}
			if err := tx.Create(settings).Error; err != nil {
				report.Steps = append(report.Steps, SyncStep{Name: "settings", Status: StepFailed, Error: err.Error()})
				return err
			}
			report.Steps = append(report.Steps, SyncStep{Name: "settings", Status: StepCreated})
		} else {
			report.Steps = append(report.Steps, SyncStep{Name: "settings", Status: StepSkipped})
		}

		return nil
	})
	if txErr != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": txErr}).Error("Profile repair transaction failed")
		report.After = before
		return report, ErrRepairFailed
	}

	after, err := s.CheckCurrentUser(ctx, userID)
	if err != nil {
		return report, nil
	}

	report.After = after
	report.Repaired = after.Consistent

	return report, nil
}

// rowExists checks for the presence of a row matching the condition
func (s *Service) rowExists(ctx context.Context, model interface{}, condition string, args ...interface{}) (bool, error) {
	var count int64
	err := s.database.WithContext(ctx).Model(model).Where(condition, args...).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// loadIdentity reads the auth identity and its sign-up metadata
func (s *Service) loadIdentity(ctx context.Context, userID string) (*identitySnapshot, error) {
	var identity models.AuthIdentity
	err := s.database.WithContext(ctx).Where("id = ?", userID).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, ErrDatabaseError
	}

	snapshot := &identitySnapshot{identity: &identity}
	_ = json.Unmarshal(identity.RawUserMetadata, &snapshot.metadata)

	return snapshot, nil
}

// buildUser reconstructs the users row from the identity. The username from
// the sign-up metadata is preferred; a fresh one is derived from the email
// when the stored name is absent or has since been taken.
func (s *Service) buildUser(ctx context.Context, snapshot *identitySnapshot) (*models.User, error) {
	username := snapshot.metadata.Username
	if username != "" {
		available, err := s.profileService.IsUsernameAvailable(ctx, username, snapshot.identity.ID)
		if err != nil {
			return nil, err
		}
		if !available {
			username = ""
		}
	}
	if username == "" {
		generated, err := s.profileService.GenerateUsername(ctx, snapshot.identity.Email)
		if err != nil {
			return nil, err
		}
		username = generated
	}

	displayName := snapshot.metadata.FullName
	if displayName == "" {
		displayName = username
	}

	return &models.User{
		ID:              snapshot.identity.ID,
		Username:        username,
		Email:           snapshot.identity.Email,
		FullName:        snapshot.metadata.FullName,
		Bio:             auth.DefaultBio,
		AvatarURL:       auth.DefaultAvatarURL(displayName),
		IsProfilePublic: true,
		ThemePreference: "dark",
		EmailVerified:   snapshot.identity.EmailVerifiedAt != nil,
	}, nil
}
