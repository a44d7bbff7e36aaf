package models

import (
	"time"

	"gorm.io/gorm"

	"beelinks-api/internal/utils"
)

// UserAvatar is one uploaded avatar image. Uploads start inactive; the
// client activates one explicitly, and at most one row per user may be
// active at a time.
type UserAvatar struct {
	ID        string `gorm:"primaryKey;column:id"`
	UserID    string `gorm:"column:user_id;not null;index:idx_user_avatars_user_id"`
	FileName  string `gorm:"column:file_name;size:255;not null"`
	ObjectKey string `gorm:"column:object_key;size:512;not null"`
	PublicURL string `gorm:"column:public_url;size:2048;not null"`
	MimeType  string `gorm:"column:mime_type;size:50;not null"`
	SizeBytes int64  `gorm:"column:size_bytes;default:0;not null"`
	IsActive  bool   `gorm:"column:is_active;default:false;not null;index:idx_user_avatars_is_active"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
	UpdatedAt int64  `gorm:"column:updated_at;autoCreateTime:false;not null"`
}

// TableName specifies the table name for UserAvatar
func (UserAvatar) TableName() string {
	return "user_avatars"
}

// BeforeCreate hook for UserAvatar
func (a *UserAvatar) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if a.ID == "" {
		a.ID = utils.GenerateAvatarID()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = now
	}
	if a.UpdatedAt == 0 {
		a.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate hook for UserAvatar
func (a *UserAvatar) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now().Unix()
	return nil
}
