package client

import (
	"context"
	"fmt"
	"io"
	"time"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket string
	Region string

	// Optional function overrides for custom test behavior
	BuildFileKeyFunc  func(counselorID, fileName string) string
	PresignUploadFunc func(ctx context.Context, key, contentType string) (string, error)
	UploadFileFunc    func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFileFunc    func(ctx context.Context, key string) error
	GetFileURLFunc    func(key string) string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket: "test-bucket",
		Region: "us-east-1",
	}
}

// BuildFileKey returns the object key for a counselor attachment
func (m *MockS3Client) BuildFileKey(counselorID, fileName string) string {
	if m.BuildFileKeyFunc != nil {
		return m.BuildFileKeyFunc(counselorID, fileName)
	}
	return fmt.Sprintf("%s/%s", counselorID, fileName)
}

// PresignUpload generates a mock presigned URL for testing
func (m *MockS3Client) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	if m.PresignUploadFunc != nil {
		return m.PresignUploadFunc(ctx, key, contentType)
	}

	now := time.Now().UTC().Format("20060102T150405Z")
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Date=%s&X-Amz-Expires=3600&X-Amz-SignedHeaders=host&X-Amz-Signature=mocksignature123",
		m.Bucket,
		m.Region,
		key,
		now,
	), nil
}

// UploadFile simulates file upload
func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}
	return m.GetFileURL(key), nil
}

// DeleteFile simulates file deletion
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	return nil
}

// GetFileURL returns the public URL for a file
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

// Ensure MockS3Client implements S3ClientInterface
var _ S3ClientInterface = (*MockS3Client)(nil)
