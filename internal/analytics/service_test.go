package analytics

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
)

func quietLogger() *logger.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logger.New(l)
}

// fakeRepo is an in-memory Repository capturing saved events
type fakeRepo struct {
	link    *models.Link
	enabled bool

	savedClick *models.LinkAnalyticsEvent
	savedView  *models.ProfileAnalyticsEvent
}

func (r *fakeRepo) FindLinkByID(linkID string) (*models.Link, error) {
	if r.link == nil || r.link.ID != linkID {
		return nil, gorm.ErrRecordNotFound
	}
	return r.link, nil
}

func (r *fakeRepo) GetAnalyticsEnabled(userID string) (bool, error) { return r.enabled, nil }

func (r *fakeRepo) SaveClickEvent(event *models.LinkAnalyticsEvent) error {
	r.savedClick = event
	return nil
}

func (r *fakeRepo) SaveViewEvent(event *models.ProfileAnalyticsEvent) error {
	r.savedView = event
	return nil
}

func (r *fakeRepo) CountClicksByUser(userID string) (int64, error)          { return 0, nil }
func (r *fakeRepo) CountViewsByUser(userID string) (int64, error)           { return 0, nil }
func (r *fakeRepo) CountLinksByUser(userID string) (int64, error)           { return 0, nil }
func (r *fakeRepo) CountClicksSince(userID string, since int64) (int64, error) {
	return 0, nil
}
func (r *fakeRepo) CountViewsSince(userID string, since int64) (int64, error) {
	return 0, nil
}
func (r *fakeRepo) ClicksByDevice(userID string) (map[string]int64, error) {
	return map[string]int64{}, nil
}
func (r *fakeRepo) CountClicksByLink(linkID string) (int64, error) { return 0, nil }
func (r *fakeRepo) RecentClicksByLink(linkID string, limit int) ([]models.LinkAnalyticsEvent, error) {
	return nil, nil
}
func (r *fakeRepo) ClickBreakdownByLink(linkID, column string) (map[string]int64, error) {
	return map[string]int64{}, nil
}

func TestTrackLinkClickRecordsVisitMetadata(t *testing.T) {
	repo := &fakeRepo{
		link:    &models.Link{ID: "l1", UserID: "user1"},
		enabled: true,
	}
	svc := NewService(repo, quietLogger())

	visit := VisitInfo{
		UserAgent: uaChromeWindows,
		Referrer:  "https://twitter.com/someone",
		IPAddress: "203.0.113.7",
		ViewerID:  "viewer42",
	}
	if err := svc.TrackLinkClick(context.Background(), "l1", visit); err != nil {
		t.Fatalf("TrackLinkClick: %v", err)
	}
	if repo.savedClick == nil {
		t.Fatal("no click event saved")
	}

	event := repo.savedClick
	if event.EventType != models.EventClick {
		t.Errorf("event type = %q, want click", event.EventType)
	}
	if event.UserAgent != uaChromeWindows {
		t.Errorf("user agent = %q, want the raw header persisted", event.UserAgent)
	}
	if event.IPAddress != "203.0.113.7" {
		t.Errorf("ip = %q, want 203.0.113.7", event.IPAddress)
	}
	if event.ViewerID != "viewer42" {
		t.Errorf("viewer = %q, want viewer42", event.ViewerID)
	}
	if event.Referrer != "https://twitter.com/someone" {
		t.Errorf("referrer = %q, want the Referer header", event.Referrer)
	}
	if event.Browser != "Chrome" || event.OS != "Windows" || event.DeviceType != models.DeviceDesktop {
		t.Errorf("sniffed %s/%s/%s, want Chrome/Windows/desktop", event.Browser, event.OS, event.DeviceType)
	}
	// No geo source exists, the columns stay empty
	if event.Country != "" || event.City != "" {
		t.Errorf("geo fields = %q/%q, want empty", event.Country, event.City)
	}
}

func TestTrackLinkClickSkipsWhenDisabled(t *testing.T) {
	repo := &fakeRepo{
		link:    &models.Link{ID: "l1", UserID: "user1"},
		enabled: false,
	}
	svc := NewService(repo, quietLogger())

	if err := svc.TrackLinkClick(context.Background(), "l1", VisitInfo{}); err != nil {
		t.Fatalf("TrackLinkClick: %v", err)
	}
	if repo.savedClick != nil {
		t.Error("event saved although analytics are disabled")
	}
}

func TestTrackLinkClickUnknownLink(t *testing.T) {
	svc := NewService(&fakeRepo{enabled: true}, quietLogger())

	if err := svc.TrackLinkClick(context.Background(), "missing", VisitInfo{}); err != ErrLinkNotFound {
		t.Errorf("got %v, want ErrLinkNotFound", err)
	}
}

func TestTrackProfileViewRecordsVisitMetadata(t *testing.T) {
	repo := &fakeRepo{enabled: true}
	svc := NewService(repo, quietLogger())

	visit := VisitInfo{
		UserAgent: uaFirefoxLinux,
		IPAddress: "198.51.100.9",
		ViewerID:  "user1",
	}
	if err := svc.TrackProfileView(context.Background(), "user1", visit); err != nil {
		t.Fatalf("TrackProfileView: %v", err)
	}
	if repo.savedView == nil {
		t.Fatal("no view event saved")
	}

	event := repo.savedView
	if event.UserAgent != uaFirefoxLinux {
		t.Errorf("user agent = %q, want the raw header persisted", event.UserAgent)
	}
	if event.IPAddress != "198.51.100.9" {
		t.Errorf("ip = %q, want 198.51.100.9", event.IPAddress)
	}
	// Owner visits are attributed, not filtered out
	if event.ViewerID != "user1" {
		t.Errorf("viewer = %q, want user1", event.ViewerID)
	}
	if event.Browser != "Firefox" || event.OS != "Linux" {
		t.Errorf("sniffed %s/%s, want Firefox/Linux", event.Browser, event.OS)
	}
}
