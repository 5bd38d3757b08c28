package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"counselor-api/internal/client"
	"counselor-api/internal/domain"
	"counselor-api/internal/dto"
	"counselor-api/internal/metrics"
	"counselor-api/internal/repository"
	"counselor-api/internal/response"
)

func newTestService(repo *MockCounselorRepository, s3 client.S3ClientInterface, presign bool) CounselorService {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
	return NewCounselorService(repo, s3, presign, m, zap.NewNop())
}

func validCreateRequest() *dto.CreateCounselorRequest {
	return &dto.CreateCounselorRequest{
		FirstName:          "Thara",
		LastName:           "Menon",
		Gender:             "female",
		DateOfBirth:        "1988-04-12",
		MailID:             "thara@example.com",
		ContactNumber:      "9876543210",
		Experience:         "8 years",
		AddressLine1:       "12 Lake View Road",
		City:               "Chennai",
		State:              "Tamil Nadu",
		PostalCode:         "600001",
		Country:            "India",
		Price:              "1500",
		Specialization:     "career counseling",
		Qualification:      "MSc Psychology",
		LanguagesSpoken:    "English, Tamil",
		Achievements:       "Best counselor award 2022",
		JoiningDate:        "2020-01-15",
		AvailabilityStatus: "available",
	}
}

func TestCreate_Success(t *testing.T) {
	var stored *domain.Counselor
	mockRepo := &MockCounselorRepository{
		PutFunc: func(ctx context.Context, c *domain.Counselor) error {
			stored = c
			return nil
		},
	}

	svc := newTestService(mockRepo, client.NewMockS3Client(), true)

	result, err := svc.Create(context.Background(), validCreateRequest(), nil, "admin")
	require.NoError(t, err)
	require.NotNil(t, result.Counselor)
	require.NotNil(t, stored)

	assert.NotEmpty(t, stored.CounselorID)
	assert.True(t, stored.Active)
	assert.Equal(t, "admin", stored.CreatedBy)
	assert.Equal(t, "admin", stored.UpdatedBy)
	assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)
	assert.Empty(t, stored.DeletedBy)
	assert.Empty(t, stored.DeletedAt)
	assert.Equal(t, "1500.00", stored.Price)
	assert.Equal(t, domain.DefaultRating, stored.Rating)
	assert.Empty(t, result.UploadURL, "no photo means no upload URL")
}

func TestCreate_GeneratesUniqueIdentifiers(t *testing.T) {
	seen := make(map[string]bool)
	mockRepo := &MockCounselorRepository{
		PutFunc: func(ctx context.Context, c *domain.Counselor) error {
			assert.False(t, seen[c.CounselorID], "identifier should be unique")
			seen[c.CounselorID] = true
			return nil
		},
	}

	svc := newTestService(mockRepo, client.NewMockS3Client(), true)
	for i := 0; i < 50; i++ {
		_, err := svc.Create(context.Background(), validCreateRequest(), nil, "admin")
		require.NoError(t, err)
	}
	assert.Len(t, seen, 50)
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateCounselorRequest)
	}{
		{"missing first name", func(r *dto.CreateCounselorRequest) { r.FirstName = "" }},
		{"missing mail id", func(r *dto.CreateCounselorRequest) { r.MailID = "" }},
		{"blank price", func(r *dto.CreateCounselorRequest) { r.Price = "   " }},
		{"missing country", func(r *dto.CreateCounselorRequest) { r.Country = "" }},
		{"missing availability status", func(r *dto.CreateCounselorRequest) { r.AvailabilityStatus = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			putCalled := false
			mockRepo := &MockCounselorRepository{
				PutFunc: func(ctx context.Context, c *domain.Counselor) error {
					putCalled = true
					return nil
				},
			}
			svc := newTestService(mockRepo, client.NewMockS3Client(), true)

			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req, nil, "admin")
			require.Error(t, err)

			var appErr *response.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, response.ErrCodeValidation, appErr.Code)
			assert.False(t, putCalled, "validation failure must not write to the store")
		})
	}
}

func TestCreate_PhotoPresign(t *testing.T) {
	var stored *domain.Counselor
	mockRepo := &MockCounselorRepository{
		PutFunc: func(ctx context.Context, c *domain.Counselor) error {
			stored = c
			return nil
		},
	}

	svc := newTestService(mockRepo, client.NewMockS3Client(), true)

	result, err := svc.Create(context.Background(), validCreateRequest(),
		&dto.PhotoUpload{FileName: "portrait.jpg"}, "admin")
	require.NoError(t, err)

	assert.NotEmpty(t, result.UploadURL)
	assert.Contains(t, result.UploadURL, "X-Amz-Signature")
	require.NotNil(t, stored)
	assert.Equal(t, stored.CounselorID+"/portrait.jpg", stored.PhotoKey)
}

func TestCreate_RejectsDisallowedExtension(t *testing.T) {
	putCalled := false
	uploadCalled := false
	presignCalled := false

	mockRepo := &MockCounselorRepository{
		PutFunc: func(ctx context.Context, c *domain.Counselor) error {
			putCalled = true
			return nil
		},
	}
	mockS3 := client.NewMockS3Client()
	mockS3.PresignUploadFunc = func(ctx context.Context, key, contentType string) (string, error) {
		presignCalled = true
		return "", nil
	}

	svc := newTestService(mockRepo, mockS3, true)

	_, err := svc.Create(context.Background(), validCreateRequest(),
		&dto.PhotoUpload{FileName: "photo.exe"}, "admin")
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeInvalidFileType, appErr.Code)
	assert.False(t, putCalled)
	assert.False(t, uploadCalled)
	assert.False(t, presignCalled)
}

func TestCreate_InvalidPrice(t *testing.T) {
	svc := newTestService(&MockCounselorRepository{}, client.NewMockS3Client(), true)

	req := validCreateRequest()
	req.Price = "not-a-number"

	_, err := svc.Create(context.Background(), req, nil, "admin")
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&MockCounselorRepository{}, client.NewMockS3Client(), true)

	_, err := svc.GetByID(context.Background(), "missing-id")
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestCreate_ThenGetByID_RoundTrip(t *testing.T) {
	store := make(map[string]*domain.Counselor)
	mockRepo := &MockCounselorRepository{
		PutFunc: func(ctx context.Context, c *domain.Counselor) error {
			copied := *c
			store[c.CounselorID] = &copied
			return nil
		},
		GetFunc: func(ctx context.Context, id string) (*domain.Counselor, error) {
			if c, ok := store[id]; ok {
				return c, nil
			}
			return nil, repository.ErrNotFound
		},
	}

	svc := newTestService(mockRepo, client.NewMockS3Client(), true)

	created, err := svc.Create(context.Background(), validCreateRequest(), nil, "admin")
	require.NoError(t, err)

	fetched, err := svc.GetByID(context.Background(), created.Counselor.CounselorID)
	require.NoError(t, err)
	assert.Equal(t, created.Counselor, fetched)
}

func TestList_ActiveOnlyFilter(t *testing.T) {
	mockRepo := &MockCounselorRepository{
		ScanAllFunc: func(ctx context.Context) ([]*domain.Counselor, error) {
			return []*domain.Counselor{
				{CounselorID: "a", Active: true},
				{CounselorID: "b", Active: false},
				{CounselorID: "c", Active: true},
			}, nil
		},
	}
	svc := newTestService(mockRepo, client.NewMockS3Client(), true)

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 3, "default listing includes soft-deleted records")

	active, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	for _, c := range active {
		assert.True(t, c.Active)
	}
}

func TestUpdate_NoChangesIsNoOp(t *testing.T) {
	current := storedCounselor()
	updateCalled := false

	mockRepo := &MockCounselorRepository{
		GetFunc: func(ctx context.Context, id string) (*domain.Counselor, error) {
			return current, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, id string, assignments map[string]interface{}) (*domain.Counselor, error) {
			updateCalled = true
			return current, nil
		},
	}
	svc := newTestService(mockRepo, client.NewMockS3Client(), true)

	req := &dto.UpdateCounselorRequest{
		FirstName: current.FirstName,
		City:      current.City,
		Price:     current.Price,
		Rating:    current.Rating,
	}

	result, err := svc.Update(context.Background(), current.CounselorID, req, nil, "admin")
	require.NoError(t, err)
	assert.True(t, result.NoChanges)
	assert.False(t, updateCalled, "identical payload must not write to the store")
	assert.Equal(t, current, result.Counselor)
}

func TestUpdate_PriceRoundHalfUp(t *testing.T) {
	current := storedCounselor()
	var captured map[string]interface{}

	mockRepo := &MockCounselorRepository{
		GetFunc: func(ctx context.Context, id string) (*domain.Counselor, error) {
			return current, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, id string, assignments map[string]interface{}) (*domain.Counselor, error) {
			captured = assignments
			return current, nil
		},
	}
	svc := newTestService(mockRepo, client.NewMockS3Client(), true)

	_, err := svc.Update(context.Background(), current.CounselorID,
		&dto.UpdateCounselorRequest{Price: "10.005"}, nil, "admin")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "10.01", captured["price"])
	assert.Equal(t, "admin", captured["updated_by"])
	assert.NotEmpty(t, captured["updated_at"])
}

func TestUpdate_DiffSkipsUnchangedFields(t *testing.T) {
	current := storedCounselor()
	var captured map[string]interface{}

	mockRepo := &MockCounselorRepository{
		GetFunc: func(ctx context.Context, id string) (*domain.Counselor, error) {
			return current, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, id string, assignments map[string]interface{}) (*domain.Counselor, error) {
			captured = assignments
			return current, nil
		},
	}
	svc := newTestService(mockRepo, client.NewMockS3Client(), true)

	// Only city differs from the stored record.
	req := &dto.UpdateCounselorRequest{
		City:           "Bengaluru",
		FirstName:      current.FirstName,
		Specialization: current.Specialization,
	}

	_, err := svc.Update(context.Background(), current.CounselorID, req, nil, "admin")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "Bengaluru", captured["city"])
	assert.NotContains(t, captured, "first_name")
	assert.NotContains(t, captured, "specialization")
	// the audit stamps plus the one changed field
	assert.Len(t, captured, 3)
}

func TestUpdate_PhotoReplacementDeletesOldFirst(t *testing.T) {
	current := storedCounselor()
	current.PhotoKey = current.CounselorID + "/old.jpg"

	var deletedKey string
	var captured map[string]interface{}

	mockS3 := client.NewMockS3Client()
	mockS3.DeleteFileFunc = func(ctx context.Context, key string) error {
		deletedKey = key
		return nil
	}

	mockRepo := &MockCounselorRepository{
		GetFunc: func(ctx context.Context, id string) (*domain.Counselor, error) {
			return current, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, id string, assignments map[string]interface{}) (*domain.Counselor, error) {
			captured = assignments
			return current, nil
		},
	}
	svc := newTestService(mockRepo, mockS3, true)

	result, err := svc.Update(context.Background(), current.CounselorID,
		&dto.UpdateCounselorRequest{}, &dto.PhotoUpload{FileName: "new.png"}, "admin")
	require.NoError(t, err)

	assert.Equal(t, current.CounselorID+"/old.jpg", deletedKey)
	assert.Equal(t, current.CounselorID+"/new.png", captured["photo_key"])
	assert.NotEmpty(t, result.UploadURL)
}

func TestUpdate_RejectsDisallowedExtension(t *testing.T) {
	current := storedCounselor()
	current.PhotoKey = current.CounselorID + "/old.jpg"
	deleteCalled := false
	presignCalled := false
	updateCalled := false

	mockS3 := client.NewMockS3Client()
	mockS3.DeleteFileFunc = func(ctx context.Context, key string) error {
		deleteCalled = true
		return nil
	}
	mockS3.PresignUploadFunc = func(ctx context.Context, key, contentType string) (string, error) {
		presignCalled = true
		return "url", nil
	}

	mockRepo := &MockCounselorRepository{
		GetFunc: func(ctx context.Context, id string) (*domain.Counselor, error) {
			return current, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, id string, assignments map[string]interface{}) (*domain.Counselor, error) {
			updateCalled = true
			return current, nil
		},
	}
	svc := newTestService(mockRepo, mockS3, true)

	_, err := svc.Update(context.Background(), current.CounselorID,
		&dto.UpdateCounselorRequest{}, &dto.PhotoUpload{FileName: "photo.exe"}, "admin")
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeInvalidFileType, appErr.Code)
	assert.False(t, deleteCalled, "the existing attachment must survive a rejected upload")
	assert.False(t, presignCalled)
	assert.False(t, updateCalled)
}

func TestUpdate_OldPhotoDeleteFailureAborts(t *testing.T) {
	current := storedCounselor()
	current.PhotoKey = current.CounselorID + "/old.jpg"
	updateCalled := false
	presignCalled := false

	mockS3 := client.NewMockS3Client()
	mockS3.DeleteFileFunc = func(ctx context.Context, key string) error {
		return assert.AnError
	}
	mockS3.PresignUploadFunc = func(ctx context.Context, key, contentType string) (string, error) {
		presignCalled = true
		return "url", nil
	}

	mockRepo := &MockCounselorRepository{
		GetFunc: func(ctx context.Context, id string) (*domain.Counselor, error) {
			return current, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, id string, assignments map[string]interface{}) (*domain.Counselor, error) {
			updateCalled = true
			return current, nil
		},
	}
	svc := newTestService(mockRepo, mockS3, true)

	_, err := svc.Update(context.Background(), current.CounselorID,
		&dto.UpdateCounselorRequest{}, &dto.PhotoUpload{FileName: "new.png"}, "admin")
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeStore, appErr.Code)
	assert.False(t, presignCalled, "no new key may be issued after a failed cleanup")
	assert.False(t, updateCalled, "the record must stay untouched")
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(&MockCounselorRepository{}, client.NewMockS3Client(), true)

	_, err := svc.Update(context.Background(), "missing-id",
		&dto.UpdateCounselorRequest{City: "Pune"}, nil, "admin")
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestDelete_SoftDelete(t *testing.T) {
	current := storedCounselor()
	var captured map[string]interface{}

	mockRepo := &MockCounselorRepository{
		GetFunc: func(ctx context.Context, id string) (*domain.Counselor, error) {
			return current, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, id string, assignments map[string]interface{}) (*domain.Counselor, error) {
			captured = assignments
			return current, nil
		},
	}
	svc := newTestService(mockRepo, client.NewMockS3Client(), true)

	result, err := svc.Delete(context.Background(), current.CounselorID, "admin")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, false, captured["active"])
	assert.Equal(t, "admin", captured["deleted_by"])
	assert.NotEmpty(t, captured["deleted_at"])
	assert.Equal(t, "admin", captured["updated_by"])

	assert.Equal(t, current.CounselorID, result.CounselorID)
	assert.Equal(t, "admin", result.DeletedBy)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(&MockCounselorRepository{}, client.NewMockS3Client(), true)

	_, err := svc.Delete(context.Background(), "missing-id", "admin")
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestDelete_AttachmentCleanupFailure(t *testing.T) {
	current := storedCounselor()
	current.PhotoKey = current.CounselorID + "/portrait.jpg"
	updateCalled := false

	mockS3 := client.NewMockS3Client()
	mockS3.DeleteFileFunc = func(ctx context.Context, key string) error {
		return assert.AnError
	}

	mockRepo := &MockCounselorRepository{
		GetFunc: func(ctx context.Context, id string) (*domain.Counselor, error) {
			return current, nil
		},
		UpdateFieldsFunc: func(ctx context.Context, id string, assignments map[string]interface{}) (*domain.Counselor, error) {
			updateCalled = true
			return current, nil
		},
	}
	svc := newTestService(mockRepo, mockS3, true)

	_, err := svc.Delete(context.Background(), current.CounselorID, "admin")
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeAttachmentCleanup, appErr.Code,
		"cleanup failure after the flag flip must be distinguishable from total failure")
	assert.True(t, updateCalled, "the soft delete itself already happened")
}

// storedCounselor returns a stored record matching validCreateRequest
func storedCounselor() *domain.Counselor {
	return &domain.Counselor{
		CounselorID:        "6fa1b9a0-1dc5-4b8f-9f57-0f0c7a9a1234",
		FirstName:          "Thara",
		LastName:           "Menon",
		Gender:             "female",
		DateOfBirth:        "1988-04-12",
		MailID:             "thara@example.com",
		ContactNumber:      "9876543210",
		Experience:         "8 years",
		AddressLine1:       "12 Lake View Road",
		City:               "Chennai",
		State:              "Tamil Nadu",
		PostalCode:         "600001",
		Country:            "India",
		Specialization:     "career counseling",
		Qualification:      "MSc Psychology",
		LanguagesSpoken:    "English, Tamil",
		Achievements:       "Best counselor award 2022",
		JoiningDate:        "2020-01-15",
		AvailabilityStatus: "available",
		Price:              "1500.00",
		Rating:             "0.00",
		CreatedBy:          "admin",
		CreatedAt:          "2024-01-01T00:00:00Z",
		UpdatedBy:          "admin",
		UpdatedAt:          "2024-01-01T00:00:00Z",
		Active:             true,
	}
}
