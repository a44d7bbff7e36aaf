package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"beelinks-api/internal/utils"
)

// AuthIdentity is the auth-side record of a user: credentials plus the raw
// sign-up metadata. It intentionally lives in its own table, separate from
// the application users table, mirroring a hosted auth provider's identity
// store. There is no foreign key between the two; keeping them in sync is
// the job of the sign-up flow and, failing that, the repair tool.
type AuthIdentity struct {
	ID              string          `gorm:"primaryKey;column:id"`
	Email           string          `gorm:"column:email;size:100;not null;unique;index:idx_auth_identities_email"`
	PasswordHash    string          `gorm:"column:password_hash;size:100;not null"`
	EmailVerifiedAt *int64          `gorm:"column:email_verified_at;default:null"`
	RawUserMetadata json.RawMessage `gorm:"column:raw_user_metadata;type:jsonb;default:'{}'"`
	LastSignInAt    int64           `gorm:"column:last_sign_in_at;autoCreateTime:false"`
	CreatedAt       int64           `gorm:"column:created_at;autoCreateTime:false;not null"`
	UpdatedAt       int64           `gorm:"column:updated_at;autoCreateTime:false;not null"`
}

// TableName specifies the table name for AuthIdentity
func (AuthIdentity) TableName() string {
	return "auth_identities"
}

// BeforeCreate hook for AuthIdentity
func (a *AuthIdentity) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if a.ID == "" {
		a.ID = utils.GenerateUserID()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = now
	}
	if a.UpdatedAt == 0 {
		a.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate hook for AuthIdentity
func (a *AuthIdentity) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now().Unix()
	return nil
}

// SignUpMetadata is the shape of AuthIdentity.RawUserMetadata.
type SignUpMetadata struct {
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// UserSession represents one signed-in device/browser session.
type UserSession struct {
	ID         string `gorm:"primaryKey;column:id"`
	UserID     string `gorm:"column:user_id;not null;index:idx_user_sessions_user_id"`
	Email      string `gorm:"column:email;size:100"`
	IPAddress  string `gorm:"column:ip_address;size:45"`
	UserAgent  string `gorm:"column:user_agent;size:512"`
	ExpiresAt  int64  `gorm:"column:expires_at;not null;index:idx_user_sessions_expires_at"`
	LastActive int64  `gorm:"column:last_active;default:0;not null"`
	IsValid    bool   `gorm:"column:is_valid;default:true;not null"`
	CreatedAt  int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
	ModifiedAt int64  `gorm:"column:modified_at;autoCreateTime:false;not null"`
}

// TableName specifies the table name for UserSession
func (UserSession) TableName() string {
	return "user_sessions"
}

// BeforeCreate hook for UserSession
func (s *UserSession) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if s.ID == "" {
		s.ID = utils.GenerateSessionID()
	}
	if s.CreatedAt == 0 {
		s.CreatedAt = now
	}
	if s.ModifiedAt == 0 {
		s.ModifiedAt = now
	}
	return nil
}

// BeforeUpdate hook for UserSession
func (s *UserSession) BeforeUpdate(tx *gorm.DB) error {
	s.ModifiedAt = time.Now().Unix()
	return nil
}
