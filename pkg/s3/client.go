// pkg/s3/client.go
package s3

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"beelinks-api/pkg/config"
)

var (
	// Global S3 client instance
	client     *Client
	clientOnce sync.Once
)

// Client wraps S3 functionality for avatar and QR code storage
type Client struct {
	s3Client      *s3.S3
	bucketName    string
	publicBaseURL string
}

// NewClient initializes a new S3 client
func NewClient(config *config.S3Config) (*Client, error) {
	// Create the S3 connection
	s3Client, err := NewS3Connection(config)
	if err != nil {
		return nil, err
	}

	return &Client{
		s3Client:      s3Client,
		bucketName:    config.BucketName,
		publicBaseURL: strings.TrimRight(config.PublicBaseURL, "/"),
	}, nil
}

// InitS3 initializes the global S3 client instance
func InitS3(s3Config *config.S3Config) error {
	var err error
	clientOnce.Do(func() {
		client, err = NewClient(s3Config)
	})
	return err
}

// GetS3Client returns the global S3 client instance
func GetS3Client() *Client {
	return client
}

// UploadObject uploads a blob under the given key with the given content type.
// Objects are uploaded publicly readable since avatars and QR codes are
// served directly from the bucket.
func (c *Client) UploadObject(key string, data []byte, contentType string) error {
	_, err := c.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})

	return err
}

// PublicURL returns the publicly reachable URL for an object key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, c.bucketName, key)
}

// GetDownloadPresignedURL generates a presigned URL for downloading an object
func (c *Client) GetDownloadPresignedURL(key string, expiresIn time.Duration) (string, error) {
	// Create a request for the specified object
	req, _ := c.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})

	// Generate a presigned URL with an expiration time
	url, err := req.Presign(expiresIn)
	if err != nil {
		return "", err
	}

	return url, nil
}

// ListObjects lists objects under a prefix
func (c *Client) ListObjects(prefix string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucketName),
		Prefix: aws.String(prefix),
	}

	result, err := c.s3Client.ListObjectsV2(input)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(result.Contents))
	for _, obj := range result.Contents {
		if obj.Key != nil {
			keys = append(keys, *obj.Key)
		}
	}

	return keys, nil
}

// DeleteObject deletes an object from S3
func (c *Client) DeleteObject(key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	}

	_, err := c.s3Client.DeleteObject(input)
	return err
}

// DeleteUserObjects deletes every object belonging to a user (avatars and
// QR codes) when the account is removed.
func (c *Client) DeleteUserObjects(userID string) error {
	prefix := userID + "/"

	// List all objects with the prefix
	objects, err := c.ListObjects(prefix)
	if err != nil {
		return err
	}

	// Delete each object
	for _, key := range objects {
		if err := c.DeleteObject(key); err != nil {
			return err
		}
	}

	return nil
}
