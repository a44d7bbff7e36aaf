// internal/jwt/types.go
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenPair represents both access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scopes       []string
	ExpiresIn    int64
}

// Define scope constants to avoid typos and ensure consistency
const (
	ScopeProfileRead    = "profile-read"
	ScopeProfileWrite   = "profile-write"
	ScopeLinksRead      = "links-read"
	ScopeLinksWrite     = "links-write"
	ScopeAnalyticsRead  = "analytics-read"
	ScopeAnalyticsWrite = "analytics-write"
	ScopeAvatarWrite    = "avatar-write"
	ScopeRepair         = "repair"
)

// Claims represents the JWT claims for your application
type Claims struct {
	UserID         string
	Email          string
	Username       string
	Scopes         []string
	SessionID      string
	TokenType      string
	IsRefreshToken *bool
	jwt.RegisteredClaims
}

// JWTService provides JWT token generation and validation
type JWTService struct {
	secret        []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}
