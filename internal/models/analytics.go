package models

import (
	"time"

	"gorm.io/gorm"

	"beelinks-api/internal/utils"
)

// Device type values recorded on analytics events.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// Event type values for link analytics events.
const (
	EventClick = "click"
	EventView  = "view"
)

// LinkAnalyticsEvent is one recorded interaction with a link. Events are
// append-only; aggregate counts are always derived by querying this table,
// never stored on the link row.
type LinkAnalyticsEvent struct {
	ID         string `gorm:"primaryKey;column:id"`
	LinkID     string `gorm:"column:link_id;not null;index:idx_link_analytics_link_id"`
	UserID     string `gorm:"column:user_id;not null;index:idx_link_analytics_user_id"`
	EventType  string `gorm:"column:event_type;size:10;default:'click';not null;index:idx_link_analytics_event_type"`
	DeviceType string `gorm:"column:device_type;size:10;default:'desktop'"`
	Browser    string `gorm:"column:browser;size:20;default:'Other'"`
	OS         string `gorm:"column:os;size:20;default:'Other'"`
	UserAgent  string `gorm:"column:user_agent;size:512"`
	Referrer   string `gorm:"column:referrer;size:2048"`
	IPAddress  string `gorm:"column:ip_address;size:45"`
	Country    string `gorm:"column:country;size:64"`
	City       string `gorm:"column:city;size:128"`
	ViewerID   string `gorm:"column:viewer_id;size:64;index:idx_link_analytics_viewer_id"`
	OccurredAt int64  `gorm:"column:occurred_at;not null;index:idx_link_analytics_occurred_at"`
	CreatedAt  int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
}

// TableName specifies the table name for LinkAnalyticsEvent
func (LinkAnalyticsEvent) TableName() string {
	return "link_analytics"
}

// BeforeCreate hook for LinkAnalyticsEvent
func (e *LinkAnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if e.ID == "" {
		e.ID = utils.GenerateEventID()
	}
	if e.EventType == "" {
		e.EventType = EventClick
	}
	if e.OccurredAt == 0 {
		e.OccurredAt = now
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = now
	}
	return nil
}

// ProfileAnalyticsEvent is one recorded view of a profile page.
type ProfileAnalyticsEvent struct {
	ID         string `gorm:"primaryKey;column:id"`
	UserID     string `gorm:"column:user_id;not null;index:idx_profile_analytics_user_id"`
	DeviceType string `gorm:"column:device_type;size:10;default:'desktop'"`
	Browser    string `gorm:"column:browser;size:20;default:'Other'"`
	OS         string `gorm:"column:os;size:20;default:'Other'"`
	UserAgent  string `gorm:"column:user_agent;size:512"`
	Referrer   string `gorm:"column:referrer;size:2048"`
	IPAddress  string `gorm:"column:ip_address;size:45"`
	Country    string `gorm:"column:country;size:64"`
	City       string `gorm:"column:city;size:128"`
	ViewerID   string `gorm:"column:viewer_id;size:64;index:idx_profile_analytics_viewer_id"`
	ViewedAt   int64  `gorm:"column:viewed_at;not null;index:idx_profile_analytics_viewed_at"`
	CreatedAt  int64  `gorm:"column:created_at;autoCreateTime:false;not null"`
}

// TableName specifies the table name for ProfileAnalyticsEvent
func (ProfileAnalyticsEvent) TableName() string {
	return "profile_analytics"
}

// BeforeCreate hook for ProfileAnalyticsEvent
func (e *ProfileAnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().Unix()
	if e.ID == "" {
		e.ID = utils.GenerateEventID()
	}
	if e.ViewedAt == 0 {
		e.ViewedAt = now
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = now
	}
	return nil
}
