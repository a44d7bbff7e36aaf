package config

import "time"

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret        string
	Issuer        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// LoadJWTConfig loads JWT configuration from environment variables
func LoadJWTConfig() *JWTConfig {
	return &JWTConfig{
		Secret:        getEnv("JWT_SECRET", ""),
		Issuer:        getEnv("JWT_ISSUER", "app.beelinks.me"),
		AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 1*time.Hour),
		RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 24*time.Hour),
	}
}
