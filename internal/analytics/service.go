package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
)

const recentClickLimit = 50

// NewService creates a new analytics service
func NewService(repo Repository, logger *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// TrackLinkClick records a click event. Tracking is best-effort: a storage
// failure is logged and swallowed so it never breaks the redirect.
func (s *Service) TrackLinkClick(ctx context.Context, linkID string, visit VisitInfo) error {
	if linkID == "" {
		return ErrInvalidInput
	}

	link, err := s.repo.FindLinkByID(linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		s.logger.WithFields(logrus.Fields{"linkID": linkID, "error": err}).Warn("Failed to resolve link for click tracking")
		return nil
	}

	enabled, err := s.repo.GetAnalyticsEnabled(link.UserID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"userID": link.UserID, "error": err}).Warn("Failed to read analytics setting")
		return nil
	}
	if !enabled {
		return nil
	}

	event := &models.LinkAnalyticsEvent{
		LinkID:     link.ID,
		UserID:     link.UserID,
		EventType:  models.EventClick,
		DeviceType: DetectDevice(visit.UserAgent),
		Browser:    DetectBrowser(visit.UserAgent),
		OS:         DetectOS(visit.UserAgent),
		UserAgent:  visit.UserAgent,
		Referrer:   visit.Referrer,
		IPAddress:  visit.IPAddress,
		ViewerID:   visit.ViewerID,
		OccurredAt: time.Now().Unix(),
	}

	if err := s.repo.SaveClickEvent(event); err != nil {
		s.logger.WithFields(logrus.Fields{"linkID": linkID, "error": err}).Warn("Failed to record click event")
	}

	return nil
}

// TrackProfileView records a profile view event, best-effort like clicks.
// Owner visits to their own dashboard are recorded the same as any visit.
func (s *Service) TrackProfileView(ctx context.Context, userID string, visit VisitInfo) error {
	if userID == "" {
		return ErrInvalidInput
	}

	enabled, err := s.repo.GetAnalyticsEnabled(userID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Warn("Failed to read analytics setting")
		return nil
	}
	if !enabled {
		return nil
	}

	event := &models.ProfileAnalyticsEvent{
		UserID:     userID,
		DeviceType: DetectDevice(visit.UserAgent),
		Browser:    DetectBrowser(visit.UserAgent),
		OS:         DetectOS(visit.UserAgent),
		UserAgent:  visit.UserAgent,
		Referrer:   visit.Referrer,
		IPAddress:  visit.IPAddress,
		ViewerID:   visit.ViewerID,
		ViewedAt:   time.Now().Unix(),
	}

	if err := s.repo.SaveViewEvent(event); err != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Warn("Failed to record view event")
	}

	return nil
}

// GetUserStats aggregates the dashboard numbers, running the independent
// count queries concurrently
func (s *Service) GetUserStats(ctx context.Context, userID string) (*UserStats, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	stats := &UserStats{}
	midnight := startOfDay(time.Now())

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.TotalClicks, err = s.repo.CountClicksByUser(userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalViews, err = s.repo.CountViewsByUser(userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalLinks, err = s.repo.CountLinksByUser(userID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ClicksToday, err = s.repo.CountClicksSince(userID, midnight)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ViewsToday, err = s.repo.CountViewsSince(userID, midnight)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ClicksByDevice, err = s.repo.ClicksByDevice(userID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": err}).Error("Failed to aggregate user stats")
		return nil, ErrDatabaseError
	}

	return stats, nil
}

// GetLinkAnalytics aggregates one link's events, scoped to the owner
func (s *Service) GetLinkAnalytics(ctx context.Context, userID, linkID string) (*LinkAnalytics, error) {
	if userID == "" || linkID == "" {
		return nil, ErrInvalidInput
	}

	link, err := s.repo.FindLinkByID(linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, ErrDatabaseError
	}
	if link.UserID != userID {
		return nil, ErrLinkNotFound
	}

	result := &LinkAnalytics{LinkID: linkID}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		result.TotalClicks, err = s.repo.CountClicksByLink(linkID)
		return err
	})
	g.Go(func() error {
		var err error
		result.ByDevice, err = s.repo.ClickBreakdownByLink(linkID, "device_type")
		return err
	})
	g.Go(func() error {
		var err error
		result.ByBrowser, err = s.repo.ClickBreakdownByLink(linkID, "browser")
		return err
	})
	g.Go(func() error {
		var err error
		result.ByOS, err = s.repo.ClickBreakdownByLink(linkID, "os")
		return err
	})
	g.Go(func() error {
		var err error
		result.RecentClicks, err = s.repo.RecentClicksByLink(linkID, recentClickLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.WithFields(logrus.Fields{"linkID": linkID, "error": err}).Error("Failed to aggregate link analytics")
		return nil, ErrDatabaseError
	}

	return result, nil
}

// startOfDay returns the unix timestamp of local midnight for t
func startOfDay(t time.Time) int64 {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location()).Unix()
}
