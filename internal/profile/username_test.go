package profile

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

// fakeRepo backs the username tests with an in-memory user set
type fakeRepo struct {
	// usernames maps username -> owning user ID
	usernames map[string]string
}

func (r *fakeRepo) FindUserByID(id string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) FindUserByUsername(username string) (*models.User, error) {
	if id, ok := r.usernames[username]; ok {
		return &models.User{ID: id, Username: username}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) FindUserBySlug(slug string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateUser(user *models.User) (*models.User, error) {
	return user, nil
}

func (r *fakeRepo) CountUsersWithUsername(username string, excludeUserID string) (int64, error) {
	id, ok := r.usernames[username]
	if !ok {
		return 0, nil
	}
	if excludeUserID != "" && id == excludeUserID {
		return 0, nil
	}
	return 1, nil
}

func (r *fakeRepo) GetSettings(userID string) (*models.UserSettings, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateSettings(settings *models.UserSettings) error { return nil }

func (r *fakeRepo) GetThemes(userID string) ([]models.Theme, error) { return nil, nil }

func (r *fakeRepo) GetTheme(userID, themeID string) (*models.Theme, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateTheme(theme *models.Theme) error { return nil }

func newTestService(usernames map[string]string) *Service {
	if usernames == nil {
		usernames = map[string]string{}
	}
	return NewService(&fakeRepo{usernames: usernames}, nil, quietLogger())
}

func TestUsernameBaseFromEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"plain local part", "alice@example.com", "alice"},
		{"dots and plus stripped", "new.user+test@example.com", "newusertest"},
		{"uppercase lowered", "Alice.Smith@example.com", "alicesmith"},
		{"underscore kept", "a_b@example.com", "a_b"},
		{"symbols only falls back", "+.-@example.com", "user"},
		{"truncated to twenty", "abcdefghijklmnopqrstuvwxyz@example.com", "abcdefghijklmnopqrst"},
		{"no at sign uses whole string", "justaname", "justaname"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usernameBaseFromEmail(tt.email); got != tt.want {
				t.Errorf("usernameBaseFromEmail(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestGenerateUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("base available", func(t *testing.T) {
		svc := newTestService(nil)
		got, err := svc.GenerateUsername(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GenerateUsername: %v", err)
		}
		if got != "alice" {
			t.Errorf("got %q, want alice", got)
		}
	})

	t.Run("suffix skips taken names", func(t *testing.T) {
		svc := newTestService(map[string]string{
			"alice":  "u1",
			"alice1": "u2",
			"alice2": "u3",
		})
		got, err := svc.GenerateUsername(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GenerateUsername: %v", err)
		}
		if got != "alice3" {
			t.Errorf("got %q, want alice3", got)
		}
	})

	t.Run("empty email rejected", func(t *testing.T) {
		svc := newTestService(nil)
		if _, err := svc.GenerateUsername(ctx, ""); err != ErrInvalidEmail {
			t.Errorf("got %v, want ErrInvalidEmail", err)
		}
	})
}

func TestIsUsernameAvailable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(map[string]string{"alice": "u1"})

	available, err := svc.IsUsernameAvailable(ctx, "alice", "")
	if err != nil {
		t.Fatalf("IsUsernameAvailable: %v", err)
	}
	if available {
		t.Error("taken username reported available")
	}

	// A user keeps their own name during edits
	available, err = svc.IsUsernameAvailable(ctx, "alice", "u1")
	if err != nil {
		t.Fatalf("IsUsernameAvailable with exclude: %v", err)
	}
	if !available {
		t.Error("own username reported unavailable when excluded")
	}

	if _, err := svc.IsUsernameAvailable(ctx, "", ""); err != ErrInvalidInput {
		t.Errorf("empty username: got %v, want ErrInvalidInput", err)
	}
}
