// Package qrcode renders profile QR codes and keeps one stored code per
// user in blob storage.
package qrcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"path"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"beelinks-api/internal/logger"
	"beelinks-api/internal/models"
	"beelinks-api/pkg/s3"
)

const defaultSize = 512

var (
	// ErrInvalidInput indicates the provided input is invalid
	ErrInvalidInput = errors.New("Invalid input provided")

	// ErrEncodingFailed indicates the QR code could not be rendered
	ErrEncodingFailed = errors.New("QR code encoding failed")

	// ErrStorageError indicates an error occurred with blob storage
	ErrStorageError = errors.New("Blob storage operation failed")

	// ErrDatabaseError indicates an error occurred with the database
	ErrDatabaseError = errors.New("Database operation failed")
)

// QRService is the interface consumed by the users handlers
type QRService interface {
	GetOrCreateProfileQR(ctx context.Context, userID, profileURL string) (*models.QRCode, error)
	RenderPNG(content string, size int) ([]byte, error)
	ImageURL(record *models.QRCode) string
}

// Service implements QRService
type Service struct {
	database *gorm.DB
	s3Client *s3.Client
	logger   *logger.Logger
}

// NewService creates a new QR code service
func NewService(database *gorm.DB, s3Client *s3.Client, logger *logger.Logger) *Service {
	return &Service{
		database: database,
		s3Client: s3Client,
		logger:   logger,
	}
}

// RenderPNG encodes the content as a QR code PNG scaled to size x size
func (s *Service) RenderPNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrInvalidInput
	}
	if size <= 0 {
		size = defaultSize
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, ErrEncodingFailed
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, ErrEncodingFailed
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, ErrEncodingFailed
	}

	return buf.Bytes(), nil
}

// ImageURL returns the public URL of the stored QR code PNG
func (s *Service) ImageURL(record *models.QRCode) string {
	if record == nil {
		return ""
	}
	return s.s3Client.PublicURL(record.ObjectKey)
}

// GetOrCreateProfileQR returns the stored QR code for the profile URL,
// regenerating it when none exists or the profile URL changed (e.g. after
// a username or slug update)
func (s *Service) GetOrCreateProfileQR(ctx context.Context, userID, profileURL string) (*models.QRCode, error) {
	if userID == "" || profileURL == "" {
		return nil, ErrInvalidInput
	}

	var existing models.QRCode
	err := s.database.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error
	if err == nil && existing.ProfileURL == profileURL {
		return &existing, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDatabaseError
	}

	data, renderErr := s.RenderPNG(profileURL, defaultSize)
	if renderErr != nil {
		return nil, renderErr
	}

	objectKey := path.Join(userID, fmt.Sprintf("qr_%d.png", defaultSize))
	if err := s.s3Client.UploadObject(objectKey, data, "image/png"); err != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "key": objectKey, "error": err}).Error("Failed to upload QR code")
		return nil, ErrStorageError
	}

	record := &existing
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = &models.QRCode{
			UserID:     userID,
			ProfileURL: profileURL,
			ObjectKey:  objectKey,
			Size:       defaultSize,
		}
		if createErr := s.database.WithContext(ctx).Create(record).Error; createErr != nil {
			s.logger.WithFields(logrus.Fields{"userID": userID, "error": createErr}).Error("Failed to save QR code record")
			return nil, ErrDatabaseError
		}
		return record, nil
	}

	// Stale code for an old profile URL: update in place
	record.ProfileURL = profileURL
	record.ObjectKey = objectKey
	record.Size = defaultSize
	if updateErr := s.database.WithContext(ctx).Save(record).Error; updateErr != nil {
		s.logger.WithFields(logrus.Fields{"userID": userID, "error": updateErr}).Error("Failed to update QR code record")
		return nil, ErrDatabaseError
	}

	return record, nil
}
