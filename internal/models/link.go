package models

import (
	"time"

	"gorm.io/gorm"

	"beelinks-api/internal/utils"
)

// Link is one entry on a user's public profile.
type Link struct {
	ID          string `gorm:"primaryKey;column:id"`
	UserID      string `gorm:"column:user_id;not null;index:idx_links_user_id"`
	Title       string `gorm:"column:title;size:100;not null"`
	URL         string `gorm:"column:url;size:2048;not null"`
	Description string `gorm:"column:description;size:255"`
	Icon        string `gorm:"column:icon;size:50;default:'fas fa-link'"`
	Position    int    `gorm:"column:position;default:0;not null;index:idx_links_position"`
	IsActive    bool   `gorm:"column:is_active;default:true;not null"`
	CreatedAt   int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
	UpdatedAt   int64  `gorm:"column:updated_at;autoCreateTime:false;not null"`

	// Relationships
	Clicks []LinkAnalyticsEvent `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE"`
	Tags   []LinkTag            `gorm:"many2many:link_tag_assignments;joinForeignKey:LinkID;joinReferences:TagID"`
}

// TableName specifies the table name for Link
func (Link) TableName() string {
	return "links"
}

// BeforeCreate hook for Link
func (l *Link) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if l.ID == "" {
		l.ID = utils.GenerateLinkID()
	}
	if l.CreatedAt == 0 {
		l.CreatedAt = now
	}
	if l.UpdatedAt == 0 {
		l.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate hook for Link
func (l *Link) BeforeUpdate(tx *gorm.DB) error {
	l.UpdatedAt = time.Now().Unix()
	return nil
}

// LinkTag is a user-defined label that can be attached to any of the
// user's links. Every new user starts with a default set.
type LinkTag struct {
	ID        string `gorm:"primaryKey;column:id"`
	UserID    string `gorm:"column:user_id;not null;index:idx_link_tags_user_id"`
	Name      string `gorm:"column:name;size:50;not null"`
	Color     string `gorm:"column:color;size:7;default:'#3B82F6'"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
	UpdatedAt int64  `gorm:"column:updated_at;autoCreateTime:false;not null"`
}

// TableName specifies the table name for LinkTag
func (LinkTag) TableName() string {
	return "link_tags"
}

// BeforeCreate hook for LinkTag
func (t *LinkTag) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if t.ID == "" {
		t.ID = utils.GenerateTagID()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = now
	}
	if t.UpdatedAt == 0 {
		t.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate hook for LinkTag
func (t *LinkTag) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now().Unix()
	return nil
}

// LinkTagAssignment is the join row between links and link_tags.
type LinkTagAssignment struct {
	LinkID    string `gorm:"primaryKey;column:link_id"`
	TagID     string `gorm:"primaryKey;column:tag_id"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
}

// TableName specifies the table name for LinkTagAssignment
func (LinkTagAssignment) TableName() string {
	return "link_tag_assignments"
}

// BeforeCreate hook for LinkTagAssignment
func (a *LinkTagAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}
	return nil
}

// QRCode stores the generated profile QR code, one row per user. The PNG
// itself lives in blob storage; this row keeps the object key and the
// profile URL it encodes so stale codes can be detected.
type QRCode struct {
	ID         string `gorm:"primaryKey;column:id"`
	UserID     string `gorm:"column:user_id;not null;unique;index:idx_qr_codes_user_id"`
	ProfileURL string `gorm:"column:profile_url;size:2048;not null"`
	ObjectKey  string `gorm:"column:object_key;size:512;not null"`
	Size       int    `gorm:"column:size;default:512;not null"`
	CreatedAt  int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
	UpdatedAt  int64  `gorm:"column:updated_at;autoCreateTime:false;not null"`
}

// TableName specifies the table name for QRCode
func (QRCode) TableName() string {
	return "qr_codes"
}

// BeforeCreate hook for QRCode
func (q *QRCode) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if q.ID == "" {
		q.ID = utils.GeneratePrefixedID("qr")
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = now
	}
	if q.UpdatedAt == 0 {
		q.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate hook for QRCode
func (q *QRCode) BeforeUpdate(tx *gorm.DB) error {
	q.UpdatedAt = time.Now().Unix()
	return nil
}
