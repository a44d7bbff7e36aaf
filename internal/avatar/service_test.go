package avatar

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
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

// fakeRepo is an in-memory avatar Repository
type fakeRepo struct {
	avatars map[string]*models.UserAvatar
	listErr error

	activated    []string
	profileReset string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{avatars: make(map[string]*models.UserAvatar)}
}

func (r *fakeRepo) FindAvatarsByUserID(userID string) ([]models.UserAvatar, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.UserAvatar
	for _, a := range r.avatars {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindActiveAvatar(userID string) (*models.UserAvatar, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	for _, a := range r.avatars {
		if a.UserID == userID && a.IsActive {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) FindAvatar(userID, avatarID string) (*models.UserAvatar, error) {
	a, ok := r.avatars[avatarID]
	if !ok || a.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeRepo) CreateAvatar(avatar *models.UserAvatar) error {
	if avatar.ID == "" {
		avatar.ID = "avatar_test"
	}
	r.avatars[avatar.ID] = avatar
	return nil
}

func (r *fakeRepo) DeleteAvatar(userID, avatarID string) error {
	a, ok := r.avatars[avatarID]
	if !ok || a.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.avatars, avatarID)
	return nil
}

func (r *fakeRepo) ActivateAvatar(ctx context.Context, userID, avatarID, publicURL string) error {
	target, ok := r.avatars[avatarID]
	if !ok || target.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	for _, a := range r.avatars {
		if a.UserID == userID {
			a.IsActive = false
		}
	}
	target.IsActive = true
	r.activated = append(r.activated, avatarID)
	return nil
}

func (r *fakeRepo) ResetProfileAvatar(userID, avatarURL string) error {
	r.profileReset = avatarURL
	return nil
}

func TestUploadAvatarValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, quietLogger())
	ctx := context.Background()

	if _, err := svc.UploadAvatar(ctx, "user1", UploadInput{}); err != ErrInvalidInput {
		t.Errorf("empty data: got %v, want ErrInvalidInput", err)
	}

	oversize := bytes.Repeat([]byte("a"), maxAvatarSize+1)
	if _, err := svc.UploadAvatar(ctx, "user1", UploadInput{MimeType: "image/png", Data: oversize}); err != ErrFileTooLarge {
		t.Errorf("oversize file: got %v, want ErrFileTooLarge", err)
	}

	if _, err := svc.UploadAvatar(ctx, "user1", UploadInput{MimeType: "image/gif", Data: []byte("gif")}); err != ErrUnsupportedType {
		t.Errorf("gif mime: got %v, want ErrUnsupportedType", err)
	}

	if _, err := svc.UploadAvatar(ctx, "", UploadInput{MimeType: "image/png", Data: []byte("png")}); err != ErrInvalidInput {
		t.Errorf("missing user: got %v, want ErrInvalidInput", err)
	}
}

func TestSetActiveAvatarSingleActive(t *testing.T) {
	repo := newFakeRepo()
	repo.avatars["a1"] = &models.UserAvatar{ID: "a1", UserID: "user1", IsActive: true, PublicURL: "https://cdn/a1"}
	repo.avatars["a2"] = &models.UserAvatar{ID: "a2", UserID: "user1", PublicURL: "https://cdn/a2"}

	svc := NewService(repo, nil, quietLogger())

	activated, err := svc.SetActiveAvatar(context.Background(), "user1", "a2")
	if err != nil {
		t.Fatalf("SetActiveAvatar: %v", err)
	}
	if !activated.IsActive {
		t.Error("returned avatar should be active")
	}

	activeCount := 0
	for _, a := range repo.avatars {
		if a.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Errorf("active avatars = %d, want exactly 1", activeCount)
	}
	if !repo.avatars["a2"].IsActive {
		t.Error("a2 should be the active avatar")
	}
}

func TestSetActiveAvatarNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, quietLogger())

	if _, err := svc.SetActiveAvatar(context.Background(), "user1", "missing"); err != ErrAvatarNotFound {
		t.Errorf("got %v, want ErrAvatarNotFound", err)
	}
}

func TestListAvatarsToleratesMissingTable(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = &pgconn.PgError{Code: "42P01"}

	svc := NewService(repo, nil, quietLogger())

	avatars, err := svc.ListAvatars(context.Background(), "user1")
	if err != nil {
		t.Fatalf("ListAvatars: %v", err)
	}
	if avatars == nil || len(avatars) != 0 {
		t.Errorf("got %v, want empty slice", avatars)
	}

	active, err := svc.GetActiveAvatar(context.Background(), "user1")
	if err != nil {
		t.Fatalf("GetActiveAvatar: %v", err)
	}
	if active != nil {
		t.Errorf("got %v, want nil active avatar", active)
	}
}

func TestDefaultAvatarSanitizesIdentifier(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, quietLogger())

	url := svc.DefaultAvatarFor("João Silva!")
	if url == "" {
		t.Fatal("expected a generated avatar URL")
	}
	if url != svc.DefaultAvatarFor("João Silva!") {
		t.Error("generated avatar URL should be deterministic")
	}
}
