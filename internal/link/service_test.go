package link

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
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

// fakeRepo is an in-memory Repository for service tests
type fakeRepo struct {
	links map[string]*models.Link
	tags  map[string]*models.LinkTag

	clicks map[string]int64
	views  map[string]int64

	// createErrs is consumed one per CreateLink call; nil means success
	createErrs  []error
	createCalls int
	maxPosition int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		links:  make(map[string]*models.Link),
		tags:   make(map[string]*models.LinkTag),
		clicks: make(map[string]int64),
		views:  make(map[string]int64),
	}
}

func (r *fakeRepo) FindLink(userID, linkID string) (*models.Link, error) {
	l, ok := r.links[linkID]
	if !ok || l.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *fakeRepo) FindLinksByUserID(userID string) ([]models.Link, error) {
	var out []models.Link
	for _, l := range r.links {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindActiveLinksByUserID(userID string) ([]models.Link, error) {
	var out []models.Link
	for _, l := range r.links {
		if l.UserID == userID && l.IsActive {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateLink(link *models.Link) error {
	r.createCalls++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if link.ID == "" {
		link.ID = "link_test"
	}
	r.links[link.ID] = link
	return nil
}

func (r *fakeRepo) UpdateLink(link *models.Link) error {
	r.links[link.ID] = link
	return nil
}

func (r *fakeRepo) DeleteLink(userID, linkID string) error {
	l, ok := r.links[linkID]
	if !ok || l.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.links, linkID)
	return nil
}

func (r *fakeRepo) MaxPosition(userID string) (int, error) {
	return r.maxPosition, nil
}

func (r *fakeRepo) ReorderLinks(ctx context.Context, userID string, orderedIDs []string) error {
	for position, id := range orderedIDs {
		l, ok := r.links[id]
		if !ok || l.UserID != userID {
			return gorm.ErrRecordNotFound
		}
		l.Position = position
	}
	return nil
}

func (r *fakeRepo) CountEvents(linkIDs []string, eventType string) (map[string]int64, error) {
	source := r.clicks
	if eventType == models.EventView {
		source = r.views
	}
	counts := make(map[string]int64)
	for _, id := range linkIDs {
		if n, ok := source[id]; ok {
			counts[id] = n
		}
	}
	return counts, nil
}

func (r *fakeRepo) FindTagsByUserID(userID string) ([]models.LinkTag, error) {
	var out []models.LinkTag
	for _, tag := range r.tags {
		if tag.UserID == userID {
			out = append(out, *tag)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindTag(userID, tagID string) (*models.LinkTag, error) {
	tag, ok := r.tags[tagID]
	if !ok || tag.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return tag, nil
}

func (r *fakeRepo) CreateTag(tag *models.LinkTag) error {
	if tag.ID == "" {
		tag.ID = "tag_test"
	}
	r.tags[tag.ID] = tag
	return nil
}

func (r *fakeRepo) DeleteTag(userID, tagID string) error {
	tag, ok := r.tags[tagID]
	if !ok || tag.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.tags, tagID)
	return nil
}

func (r *fakeRepo) FindTagsForLinks(linkIDs []string) (map[string][]models.LinkTag, error) {
	return map[string][]models.LinkTag{}, nil
}

func (r *fakeRepo) ReplaceLinkTags(ctx context.Context, linkID string, tagIDs []string) error {
	return nil
}

func TestCreateLinkDefaults(t *testing.T) {
	repo := newFakeRepo()
	repo.maxPosition = 3
	svc := NewService(repo, nil, nil, quietLogger())

	created, err := svc.CreateLink(context.Background(), "user1", CreateLinkInput{
		Title: "  My Repo  ",
		URL:   "github.com/someone/repo",
	})
	if err != nil {
		t.Fatalf("CreateLink: %v", err)
	}

	if created.Title != "My Repo" {
		t.Errorf("title = %q, want trimmed %q", created.Title, "My Repo")
	}
	if created.URL != "https://github.com/someone/repo" {
		t.Errorf("url = %q, want https prefix", created.URL)
	}
	if created.Description != "Clique para visitar" {
		t.Errorf("description = %q, want default placeholder", created.Description)
	}
	if created.Icon != "fab fa-github" {
		t.Errorf("icon = %q, want auto-detected github icon", created.Icon)
	}
	if created.Position != 4 {
		t.Errorf("position = %d, want 4", created.Position)
	}
	if !created.IsActive {
		t.Error("new link should be active")
	}
}

func TestCreateLinkValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, quietLogger())
	ctx := context.Background()

	if _, err := svc.CreateLink(ctx, "user1", CreateLinkInput{Title: "a", URL: "https://x.com"}); err != ErrInvalidTitle {
		t.Errorf("short title: got %v, want ErrInvalidTitle", err)
	}
	if _, err := svc.CreateLink(ctx, "user1", CreateLinkInput{Title: "ok", URL: "ftp://x.com"}); err != ErrInvalidURL {
		t.Errorf("ftp url: got %v, want ErrInvalidURL", err)
	}
	if _, err := svc.CreateLink(ctx, "user1", CreateLinkInput{Title: "ok", URL: "https://x.com", Description: "abc"}); err != ErrInvalidDescription {
		t.Errorf("short description: got %v, want ErrInvalidDescription", err)
	}
	if _, err := svc.CreateLink(ctx, "", CreateLinkInput{Title: "ok", URL: "https://x.com"}); err != ErrInvalidInput {
		t.Errorf("missing user: got %v, want ErrInvalidInput", err)
	}
}

func TestCreateLinkRepairsMissingOwner(t *testing.T) {
	repo := newFakeRepo()
	repo.createErrs = []error{gorm.ErrForeignKeyViolated, nil}

	repairCalls := 0
	svc := NewService(repo, nil, func(ctx context.Context, userID string) error {
		repairCalls++
		if userID != "user1" {
			t.Errorf("repair hook got userID %q, want user1", userID)
		}
		return nil
	}, quietLogger())

	created, err := svc.CreateLink(context.Background(), "user1", CreateLinkInput{
		Title: "Site",
		URL:   "https://example.com",
	})
	if err != nil {
		t.Fatalf("CreateLink after repair: %v", err)
	}
	if created == nil {
		t.Fatal("expected a created link")
	}
	if repairCalls != 1 {
		t.Errorf("repair hook called %d times, want 1", repairCalls)
	}
	if repo.createCalls != 2 {
		t.Errorf("insert attempted %d times, want 2", repo.createCalls)
	}
}

func TestCreateLinkRetriesOnlyOnce(t *testing.T) {
	repo := newFakeRepo()
	repo.createErrs = []error{gorm.ErrForeignKeyViolated, gorm.ErrForeignKeyViolated}

	repairCalls := 0
	svc := NewService(repo, nil, func(ctx context.Context, userID string) error {
		repairCalls++
		return nil
	}, quietLogger())

	_, err := svc.CreateLink(context.Background(), "user1", CreateLinkInput{
		Title: "Site",
		URL:   "https://example.com",
	})
	if err != ErrMissingOwnerRecord {
		t.Fatalf("got %v, want ErrMissingOwnerRecord", err)
	}
	if repairCalls != 1 {
		t.Errorf("repair hook called %d times, want exactly 1", repairCalls)
	}
	if repo.createCalls != 2 {
		t.Errorf("insert attempted %d times, want exactly 2", repo.createCalls)
	}
}

func TestCreateLinkRepairFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.createErrs = []error{gorm.ErrForeignKeyViolated}

	svc := NewService(repo, nil, func(ctx context.Context, userID string) error {
		return errors.New("repair broke")
	}, quietLogger())

	_, err := svc.CreateLink(context.Background(), "user1", CreateLinkInput{
		Title: "Site",
		URL:   "https://example.com",
	})
	if err != ErrMissingOwnerRecord {
		t.Fatalf("got %v, want ErrMissingOwnerRecord", err)
	}
	if repo.createCalls != 1 {
		t.Errorf("insert attempted %d times, want 1 (no retry after failed repair)", repo.createCalls)
	}
}

func TestCreateLinkWithoutRepairHook(t *testing.T) {
	repo := newFakeRepo()
	repo.createErrs = []error{gorm.ErrForeignKeyViolated}

	svc := NewService(repo, nil, nil, quietLogger())

	_, err := svc.CreateLink(context.Background(), "user1", CreateLinkInput{
		Title: "Site",
		URL:   "https://example.com",
	})
	if err != ErrMissingOwnerRecord {
		t.Fatalf("got %v, want ErrMissingOwnerRecord", err)
	}
}

func TestGetUserLinksCounts(t *testing.T) {
	repo := newFakeRepo()
	repo.links["l1"] = &models.Link{ID: "l1", UserID: "user1", Title: "One", IsActive: true}
	repo.clicks["l1"] = 7
	repo.views["l1"] = 3

	svc := NewService(repo, nil, nil, quietLogger())

	links, err := svc.GetUserLinks(context.Background(), "user1")
	if err != nil {
		t.Fatalf("GetUserLinks: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].ClickCount != 7 {
		t.Errorf("click count = %d, want 7", links[0].ClickCount)
	}
	if links[0].ViewCount != 3 {
		t.Errorf("view count = %d, want 3", links[0].ViewCount)
	}
	if links[0].TagList == nil {
		t.Error("tag list should be an empty slice, not nil")
	}
}

func TestUpdateLinkRedetectsIcon(t *testing.T) {
	repo := newFakeRepo()
	repo.links["l1"] = &models.Link{ID: "l1", UserID: "user1", Title: "One", URL: "https://example.com", Icon: "fas fa-link"}

	svc := NewService(repo, nil, nil, quietLogger())

	newURL := "https://github.com/someone"
	updated, err := svc.UpdateLink(context.Background(), "user1", "l1", UpdateLinkInput{URL: &newURL})
	if err != nil {
		t.Fatalf("UpdateLink: %v", err)
	}
	if updated.Icon != "fab fa-github" {
		t.Errorf("icon = %q, want re-detected github icon", updated.Icon)
	}

	// A pinned icon wins over re-detection
	otherURL := "https://x.com/someone"
	pinned := "fas fa-star"
	updated, err = svc.UpdateLink(context.Background(), "user1", "l1", UpdateLinkInput{URL: &otherURL, Icon: &pinned})
	if err != nil {
		t.Fatalf("UpdateLink with pinned icon: %v", err)
	}
	if updated.Icon != pinned {
		t.Errorf("icon = %q, want pinned %q", updated.Icon, pinned)
	}
}

func TestReorderLinksMismatch(t *testing.T) {
	repo := newFakeRepo()
	repo.links["l1"] = &models.Link{ID: "l1", UserID: "user1"}
	repo.links["l2"] = &models.Link{ID: "l2", UserID: "user1"}

	svc := NewService(repo, nil, nil, quietLogger())
	ctx := context.Background()

	if err := svc.ReorderLinks(ctx, "user1", []string{"l1"}); err != ErrReorderMismatch {
		t.Errorf("partial list: got %v, want ErrReorderMismatch", err)
	}
	if err := svc.ReorderLinks(ctx, "user1", []string{"l1", "nope"}); err != ErrReorderMismatch {
		t.Errorf("unknown id: got %v, want ErrReorderMismatch", err)
	}
	if err := svc.ReorderLinks(ctx, "user1", []string{"l2", "l1"}); err != nil {
		t.Errorf("valid reorder: got %v, want nil", err)
	}
	if repo.links["l2"].Position != 0 || repo.links["l1"].Position != 1 {
		t.Errorf("positions = l2:%d l1:%d, want l2:0 l1:1", repo.links["l2"].Position, repo.links["l1"].Position)
	}
}

func TestCreateLinkFailureLogsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	repo := newFakeRepo()
	repo.createErrs = []error{errors.New("connection reset")}
	svc := NewService(repo, nil, nil, logger.New(l))

	if _, err := svc.CreateLink(context.Background(), "user1", CreateLinkInput{Title: "Site", URL: "https://example.com"}); err == nil {
		t.Fatal("expected an error from the failed insert")
	}

	out := buf.String()
	if !strings.Contains(out, `"userID":"user1"`) {
		t.Errorf("log output missing the userID field: %s", out)
	}
	if !strings.Contains(out, `"error":"connection reset"`) {
		t.Errorf("log output missing the error field: %s", out)
	}
	if !strings.Contains(out, `"msg":"Failed to create link"`) {
		t.Errorf("log output missing the plain message: %s", out)
	}
}
