package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"beelinks-api/internal/jwt"
	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/internal/profile"
	"beelinks-api/internal/session"
)

const minPasswordLength = 6

// NewService creates a new auth service
func NewService(
	repo Repository,
	profileService profile.ProfileService,
	sessionService *session.Service,
	jwtService *jwt.JWTService,
	broker *Broker,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:           repo,
		profileService: profileService,
		sessionService: sessionService,
		jwtService:     jwtService,
		broker:         broker,
		logger:         logger,
	}
}

// SignUp registers a new account: the auth identity first, then the
// app-side profile records in a single transaction. The identity is
// deliberately committed before the profile transaction, so a profile
// failure leaves a signed-up account without a users row.
func (s *Service) SignUp(ctx context.Context, input SignUpInput) (*SignUpResult, error) {
	validator := profile.NewProfileValidator()
	if !validator.ValidateEmail(input.Email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	// Reject duplicate emails up front
	_, err := s.repo.FindIdentityByEmail(input.Email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDatabaseError
	}

	// Resolve the username: caller-provided names are validated and checked,
	// otherwise one is derived from the email
	username := input.Username
	if username != "" {
		if !validator.ValidateUsername(username) {
			return nil, ErrInvalidUsername
		}
		available, err := s.profileService.IsUsernameAvailable(ctx, username, "")
		if err != nil {
			return nil, ErrDatabaseError
		}
		if !available {
			return nil, ErrUsernameAlreadyExists
		}
	} else {
		username, err = s.profileService.GenerateUsername(ctx, input.Email)
		if err != nil {
			return nil, ErrDatabaseError
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Errorf("Failed to hash password: %v", err)
		return nil, ErrDatabaseError
	}

	metadata, _ := json.Marshal(models.SignUpMetadata{
		Username: username,
		FullName: input.FullName,
	})

	identity := &models.AuthIdentity{
		Email:           input.Email,
		PasswordHash:    string(hash),
		RawUserMetadata: metadata,
		LastSignInAt:    time.Now().Unix(),
	}
	if err := s.repo.SaveIdentity(identity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Errorf("Failed to save auth identity: %v", err)
		return nil, ErrDatabaseError
	}

	displayName := input.FullName
	if displayName == "" {
		displayName = username
	}

	user := &models.User{
		ID:              identity.ID,
		Username:        username,
		Email:           input.Email,
		FullName:        input.FullName,
		Bio:             DefaultBio,
		AvatarURL:       DefaultAvatarURL(displayName),
		IsProfilePublic: true,
		ThemePreference: "dark",
	}

	err = s.repo.CreateProfileRecords(ctx, user, DefaultSettings(), DefaultTheme(), defaultTags())
	if err != nil {
		// The identity is already committed. Surface the failure but keep the
		// account usable; the repair flow recreates the missing rows.
		s.logger.WithFields(logrus.Fields{"userID": identity.ID, "error": err}).Error("Failed to create profile records after identity")
		return nil, ErrProfileCreationFailed
	}

	sess, err := s.sessionService.CreateSession(ctx, user, session.ClientInfo{})
	if err != nil {
		return nil, err
	}

	tokens, err := s.jwtService.GenerateAuthTokens(*user, sess.ID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"userID": user.ID, "error": err}).Error("Failed to generate tokens at sign-up")
		return nil, err
	}

	s.broker.Publish(Event{Type: EventSignedUp, UserID: user.ID, SessionID: sess.ID})
	s.broker.Publish(Event{Type: EventSignedIn, UserID: user.ID, SessionID: sess.ID})

	return &SignUpResult{
		Identity: identity,
		User:     user,
		Session:  sess,
		Tokens:   tokens,
	}, nil
}

// SignIn authenticates credentials and opens a session. A missing app-side
// profile row does not block sign-in; the result flags it so clients can
// trigger repair.
func (s *Service) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	identity, err := s.repo.FindIdentityByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, ErrDatabaseError
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity.LastSignInAt = time.Now().Unix()
	if err := s.repo.UpdateIdentity(identity); err != nil {
		s.logger.WithFields(logrus.Fields{"userID": identity.ID, "error": err}).Warn("Failed to record last sign-in time")
	}

	profileMissing := false
	user, err := s.profileService.GetCurrentUser(ctx, identity.ID)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileMissing) {
			return nil, ErrDatabaseError
		}
		// Authenticate anyway with a transient user built from the identity
		profileMissing = true
		var meta models.SignUpMetadata
		_ = json.Unmarshal(identity.RawUserMetadata, &meta)
		user = &models.User{
			ID:       identity.ID,
			Username: meta.Username,
			Email:    identity.Email,
			FullName: meta.FullName,
		}
	}

	sess, err := s.sessionService.CreateSession(ctx, user, session.ClientInfo{
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := s.jwtService.GenerateAuthTokens(*user, sess.ID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"userID": user.ID, "error": err}).Error("Failed to generate tokens at sign-in")
		return nil, err
	}

	s.broker.Publish(Event{Type: EventSignedIn, UserID: user.ID, SessionID: sess.ID})

	return &SignInResult{
		User:           user,
		Session:        sess,
		Tokens:         tokens,
		ProfileMissing: profileMissing,
	}, nil
}

// SignOut invalidates the session and notifies subscribers
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	sess, err := s.sessionService.GetSessionByID(ctx, sessionID)
	if err != nil {
		// Already gone is fine for sign-out
		if err == session.ErrSessionNotFound || err == session.ErrSessionInvalid || err == session.ErrSessionExpired {
			return nil
		}
		return err
	}

	if err := s.sessionService.InvalidateSession(ctx, sessionID); err != nil {
		return err
	}

	s.broker.Publish(Event{Type: EventSignedOut, UserID: sess.UserID, SessionID: sessionID})

	return nil
}

// RefreshTokens mints a new token pair and extends the session
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (jwt.TokenPair, error) {
	tokens, err := s.jwtService.RefreshTokenPair(refreshToken)
	if err != nil {
		return jwt.TokenPair{}, err
	}

	claims, err := s.jwtService.ValidateToken(tokens.AccessToken)
	if err != nil {
		return jwt.TokenPair{}, err
	}

	if err := s.sessionService.RefreshSession(ctx, claims.SessionID); err != nil {
		return jwt.TokenPair{}, err
	}

	s.broker.Publish(Event{Type: EventTokenRefresh, UserID: claims.UserID, SessionID: claims.SessionID})

	return tokens, nil
}
