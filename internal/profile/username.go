package profile

import (
	"context"
	"fmt"
	"strings"
)

const maxBaseUsernameLength = 20

// usernameBaseFromEmail derives the base username candidate from an email
// address: the local part, lowercased, stripped of everything outside
// [a-z0-9_] and truncated to 20 characters. An empty result falls back
// to "user".
func usernameBaseFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}

	local = strings.ToLower(local)

	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}

	base := b.String()
	if len(base) > maxBaseUsernameLength {
		base = base[:maxBaseUsernameLength]
	}
	if base == "" {
		base = "user"
	}

	return base
}

// GenerateUsername derives a unique username from an email address. If the
// base candidate is taken, integer suffixes are appended starting at 1
// until a free one is found.
func (s *Service) GenerateUsername(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrInvalidEmail
	}

	base := usernameBaseFromEmail(email)

	candidate := base
	for suffix := 1; ; suffix++ {
		available, err := s.IsUsernameAvailable(ctx, candidate, "")
		if err != nil {
			return "", err
		}
		if available {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}
