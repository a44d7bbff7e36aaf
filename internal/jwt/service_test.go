// internal/jwt/service_test.go
package jwt

import (
	"testing"
	"time"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService("test-secret", "app.beelinks.me", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	return svc
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	if _, err := NewJWTService("", "app.beelinks.me", time.Hour, 24*time.Hour); err == nil {
		t.Error("expected an error for an empty secret")
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(t)

	pair, err := svc.GenerateTokenPair("user1", "alice@example.com", "alice", GetUserScopes(), "sess1")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("token type = %q, want Bearer", pair.TokenType)
	}
	if pair.ExpiresIn != 3600 {
		t.Errorf("expires in = %d, want 3600", pair.ExpiresIn)
	}

	claims, err := svc.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken(access): %v", err)
	}
	if claims.UserID != "user1" || claims.Username != "alice" || claims.SessionID != "sess1" {
		t.Errorf("claims = %+v, want user1/alice/sess1", claims)
	}
	if claims.IsRefreshToken != nil && *claims.IsRefreshToken {
		t.Error("access token must not be marked as a refresh token")
	}
	if !claims.HasScope(ScopeLinksWrite) {
		t.Error("expected the standard scope set on the access token")
	}

	refreshClaims, err := svc.ValidateToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ValidateToken(refresh): %v", err)
	}
	if refreshClaims.IsRefreshToken == nil || !*refreshClaims.IsRefreshToken {
		t.Error("refresh token must be marked as a refresh token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService(t)
	other, err := NewJWTService("other-secret", "app.beelinks.me", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}

	pair, err := svc.GenerateTokenPair("user1", "alice@example.com", "alice", nil, "sess1")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := other.ValidateToken(pair.AccessToken); err == nil {
		t.Error("token signed with a different secret must not validate")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestJWTService(t)

	expired, err := svc.GenerateToken("user1", "alice@example.com", "alice", nil, "sess1", -time.Minute, "Bearer", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(expired); err == nil {
		t.Error("expired token must not validate")
	}
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService(t)

	pair, err := svc.GenerateTokenPair("user1", "alice@example.com", "alice", GetUserScopes(), "sess1")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	rotated, err := svc.RefreshTokenPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshTokenPair: %v", err)
	}

	claims, err := svc.ValidateToken(rotated.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken(rotated): %v", err)
	}
	if claims.UserID != "user1" || claims.SessionID != "sess1" {
		t.Errorf("rotated claims = %+v, want same user and session", claims)
	}
	if !claims.HasScopes(GetUserScopes()) {
		t.Error("rotation must keep the original scopes")
	}

	// Access tokens cannot mint new pairs
	if _, err := svc.RefreshTokenPair(pair.AccessToken); err == nil {
		t.Error("access token must not be usable as a refresh token")
	}
}
