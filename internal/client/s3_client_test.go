package client

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appConfig "counselor-api/internal/config"
	"counselor-api/internal/metrics"
)

// minioTestConfig returns a config with static credentials so presign
// calls stay fully local.
func minioTestConfig() *appConfig.S3Config {
	return &appConfig.S3Config{
		Bucket:    "counselor-attachments",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}
}

func TestNewS3Client_RequiresBucket(t *testing.T) {
	cfg := minioTestConfig()
	cfg.Bucket = ""

	_, err := NewS3Client(cfg, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}

func TestNewS3Client_RequiresRegion(t *testing.T) {
	cfg := minioTestConfig()
	cfg.Region = ""

	_, err := NewS3Client(cfg, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "region")
}

func TestNewS3Client_RequiresCredentialsForEndpoint(t *testing.T) {
	cfg := minioTestConfig()
	cfg.AccessKey = ""
	cfg.SecretKey = ""

	_, err := NewS3Client(cfg, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "access key")
}

func TestBuildFileKey(t *testing.T) {
	c, err := NewS3Client(minioTestConfig(), nil)
	require.NoError(t, err)

	key := c.BuildFileKey("c-123", "portrait.jpg")

	assert.Equal(t, "c-123/portrait.jpg", key)
}

func TestPresignUpload_SignsLocally(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
	c, err := NewS3Client(minioTestConfig(), m)
	require.NoError(t, err)

	url, err := c.PresignUpload(context.Background(), "c-123/portrait.jpg", "image/jpeg")

	require.NoError(t, err)
	assert.Contains(t, url, "counselor-attachments")
	assert.Contains(t, url, "c-123/portrait.jpg")
	assert.Contains(t, url, "X-Amz-Algorithm=AWS4-HMAC-SHA256")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=3600")
	// Path-style addressing against the local endpoint
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/"))
}

func TestGetFileURL_EndpointMode(t *testing.T) {
	c, err := NewS3Client(minioTestConfig(), nil)
	require.NoError(t, err)

	url := c.GetFileURL("c-123/portrait.jpg")

	assert.Equal(t, "http://localhost:9000/counselor-attachments/c-123/portrait.jpg", url)
}

func TestGetFileURL_AWSMode(t *testing.T) {
	cfg := minioTestConfig()
	cfg.Endpoint = ""
	cfg.AccessKey = ""
	cfg.SecretKey = ""
	c, err := NewS3Client(cfg, nil)
	require.NoError(t, err)

	url := c.GetFileURL("c-123/portrait.jpg")

	assert.Equal(t, "https://counselor-attachments.s3.us-east-1.amazonaws.com/c-123/portrait.jpg", url)
}

func TestMockS3Client_DefaultPresign(t *testing.T) {
	m := NewMockS3Client()

	url, err := m.PresignUpload(context.Background(), "c-123/portrait.jpg", "image/jpeg")

	require.NoError(t, err)
	assert.Contains(t, url, "c-123/portrait.jpg")
	assert.Contains(t, url, "X-Amz-Expires=3600")
	assert.Contains(t, url, "X-Amz-Signature=")
}
