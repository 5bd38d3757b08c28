// Package service implements the counselor record business logic.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"counselor-api/internal/client"
	"counselor-api/internal/domain"
	"counselor-api/internal/dto"
	"counselor-api/internal/metrics"
	"counselor-api/internal/repository"
	"counselor-api/internal/response"
)

// CounselorService defines the interface for counselor business logic
type CounselorService interface {
	Create(ctx context.Context, req *dto.CreateCounselorRequest, photo *dto.PhotoUpload, currentUser string) (*dto.CounselorResult, error)
	GetByID(ctx context.Context, counselorID string) (*domain.Counselor, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Counselor, error)
	Update(ctx context.Context, counselorID string, req *dto.UpdateCounselorRequest, photo *dto.PhotoUpload, currentUser string) (*dto.CounselorResult, error)
	Delete(ctx context.Context, counselorID, currentUser string) (*dto.DeleteCounselorResult, error)
}

// counselorServiceImpl is the implementation of CounselorService
type counselorServiceImpl struct {
	repo           repository.CounselorRepository
	s3Client       client.S3ClientInterface
	presignUploads bool
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewCounselorService creates a new instance of CounselorService.
// With presignUploads set, attachment uploads hand a presigned PUT URL
// back to the caller; otherwise the file bytes are uploaded directly.
func NewCounselorService(
	repo repository.CounselorRepository,
	s3Client client.S3ClientInterface,
	presignUploads bool,
	m *metrics.Metrics,
	logger *zap.Logger,
) CounselorService {
	return &counselorServiceImpl{
		repo:           repo,
		s3Client:       s3Client,
		presignUploads: presignUploads,
		metrics:        m,
		logger:         logger,
	}
}

// Create validates the request, stores the attachment reference and
// writes the new record with audit stamps.
func (s *counselorServiceImpl) Create(ctx context.Context, req *dto.CreateCounselorRequest, photo *dto.PhotoUpload, currentUser string) (*dto.CounselorResult, error) {
	if missing := req.MissingRequiredFields(); len(missing) > 0 {
		return nil, response.NewAppError(response.ErrCodeValidation,
			"Required fields are missing: "+strings.Join(missing, ", "), "")
	}

	price, err := domain.NormalizeAmount(req.Price)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid price value", err.Error())
	}

	rating := domain.DefaultRating
	if req.Rating != "" {
		rating, err = domain.NormalizeAmount(req.Rating)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid rating value", err.Error())
		}
	}

	hasPhoto := photo != nil && photo.FileName != ""
	if hasPhoto && !domain.IsAllowedPhotoFilename(photo.FileName) {
		return nil, response.NewAppError(response.ErrCodeInvalidFileType,
			"Invalid file type. Only JPEG, JPG, PNG or PDF files are allowed.", "")
	}

	counselorID := uuid.New().String()

	var photoKey, uploadURL string
	if hasPhoto {
		photoKey = s.s3Client.BuildFileKey(counselorID, photo.FileName)
		uploadURL, err = s.storeAttachment(ctx, photoKey, photo)
		if err != nil {
			return nil, err
		}
	}

	now := domain.Now()
	counselor := &domain.Counselor{
		CounselorID:            counselorID,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Gender:                 req.Gender,
		DateOfBirth:            req.DateOfBirth,
		MailID:                 req.MailID,
		ContactNumber:          req.ContactNumber,
		AlternateContactNumber: req.AlternateContactNumber,
		AddressLine1:           req.AddressLine1,
		City:                   req.City,
		State:                  req.State,
		PostalCode:             req.PostalCode,
		Country:                req.Country,
		Specialization:         req.Specialization,
		Qualification:          req.Qualification,
		Experience:             req.Experience,
		EducationHistory:       req.EducationHistory,
		About:                  req.About,
		Achievements:           req.Achievements,
		Price:                  price,
		Rating:                 rating,
		LanguagesSpoken:        req.LanguagesSpoken,
		AvailabilityStatus:     req.AvailabilityStatus,
		JoiningDate:            req.JoiningDate,
		PhotoKey:               photoKey,
		CreatedBy:              currentUser,
		CreatedAt:              now,
		UpdatedBy:              currentUser,
		UpdatedAt:              now,
		Active:                 true,
	}

	if err := s.repo.Put(ctx, counselor); err != nil {
		s.logger.Error("Failed to store counselor",
			zap.String("counselor_id", counselorID),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeStore, "Failed to create counselor", err.Error())
	}

	s.metrics.RecordCounselorCreated()
	s.logger.Info("Counselor created",
		zap.String("counselor_id", counselorID),
		zap.String("created_by", currentUser),
		zap.Bool("has_photo", hasPhoto))

	return &dto.CounselorResult{
		Counselor: counselor,
		UploadURL: uploadURL,
	}, nil
}

// GetByID performs a single point lookup. Soft-deleted records are
// returned like any other.
func (s *counselorServiceImpl) GetByID(ctx context.Context, counselorID string) (*domain.Counselor, error) {
	counselor, err := s.repo.Get(ctx, counselorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Counselor not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeStore, "Failed to retrieve counselor", err.Error())
	}
	return counselor, nil
}

// List scans the whole table. With activeOnly set, soft-deleted records
// are filtered out; the default keeps them, matching GetByID.
func (s *counselorServiceImpl) List(ctx context.Context, activeOnly bool) ([]*domain.Counselor, error) {
	counselors, err := s.repo.ScanAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeStore, "Failed to retrieve counselors", err.Error())
	}

	if !activeOnly {
		return counselors, nil
	}

	active := make([]*domain.Counselor, 0, len(counselors))
	for _, c := range counselors {
		if c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

// Update fetches the current record, computes a field-level diff against
// the supplied values and applies it as one conditional update. Fields
// matching the stored value are not rewritten.
func (s *counselorServiceImpl) Update(ctx context.Context, counselorID string, req *dto.UpdateCounselorRequest, photo *dto.PhotoUpload, currentUser string) (*dto.CounselorResult, error) {
	current, err := s.repo.Get(ctx, counselorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Counselor not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeStore, "Failed to retrieve counselor", err.Error())
	}

	assignments := map[string]interface{}{}

	diffs := []struct {
		attr   string
		input  string
		stored string
	}{
		{"first_name", req.FirstName, current.FirstName},
		{"last_name", req.LastName, current.LastName},
		{"gender", req.Gender, current.Gender},
		{"date_of_birth", req.DateOfBirth, current.DateOfBirth},
		{"mail_id", req.MailID, current.MailID},
		{"contact_number", req.ContactNumber, current.ContactNumber},
		{"alternate_contact_number", req.AlternateContactNumber, current.AlternateContactNumber},
		{"address_line1", req.AddressLine1, current.AddressLine1},
		{"city", req.City, current.City},
		{"state", req.State, current.State},
		{"postal_code", req.PostalCode, current.PostalCode},
		{"country", req.Country, current.Country},
		{"specialization", req.Specialization, current.Specialization},
		{"qualification", req.Qualification, current.Qualification},
		{"experience", req.Experience, current.Experience},
		{"education_history", req.EducationHistory, current.EducationHistory},
		{"about", req.About, current.About},
		{"achievements", req.Achievements, current.Achievements},
		{"languages_spoken", req.LanguagesSpoken, current.LanguagesSpoken},
		{"availability_status", req.AvailabilityStatus, current.AvailabilityStatus},
		{"joining_date", req.JoiningDate, current.JoiningDate},
	}
	for _, d := range diffs {
		if d.input != "" && d.input != d.stored {
			assignments[d.attr] = d.input
		}
	}

	if req.Price != "" {
		price, err := domain.NormalizeAmount(req.Price)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid price value", err.Error())
		}
		if price != current.Price {
			assignments["price"] = price
		}
	}
	if req.Rating != "" {
		rating, err := domain.NormalizeAmount(req.Rating)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid rating value", err.Error())
		}
		if rating != current.Rating {
			assignments["rating"] = rating
		}
	}

	hasPhoto := photo != nil && photo.FileName != ""
	var uploadURL string
	if hasPhoto {
		if !domain.IsAllowedPhotoFilename(photo.FileName) {
			return nil, response.NewAppError(response.ErrCodeInvalidFileType,
				"Invalid file type. Only JPEG, JPG, PNG or PDF files are allowed.", "")
		}

		// The old object goes first. If its deletion fails the whole
		// update aborts rather than leaving an orphaned reference.
		if current.PhotoKey != "" {
			if err := s.s3Client.DeleteFile(ctx, current.PhotoKey); err != nil {
				s.logger.Error("Failed to delete previous attachment",
					zap.String("counselor_id", counselorID),
					zap.String("photo_key", current.PhotoKey),
					zap.Error(err))
				return nil, response.NewAppError(response.ErrCodeStore, "Failed to replace attachment", err.Error())
			}
		}

		photoKey := s.s3Client.BuildFileKey(counselorID, photo.FileName)
		uploadURL, err = s.storeAttachment(ctx, photoKey, photo)
		if err != nil {
			return nil, err
		}
		if photoKey != current.PhotoKey {
			assignments["photo_key"] = photoKey
		}
	}

	if len(assignments) == 0 && !hasPhoto {
		s.logger.Debug("Update matched stored values, skipping write",
			zap.String("counselor_id", counselorID))
		return &dto.CounselorResult{Counselor: current, NoChanges: true}, nil
	}

	assignments["updated_by"] = currentUser
	assignments["updated_at"] = domain.Now()

	updated, err := s.repo.UpdateFields(ctx, counselorID, assignments)
	if err != nil {
		s.logger.Error("Failed to update counselor",
			zap.String("counselor_id", counselorID),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeStore, "Failed to update counselor", err.Error())
	}

	s.logger.Info("Counselor updated",
		zap.String("counselor_id", counselorID),
		zap.String("updated_by", currentUser),
		zap.Int("changed_fields", len(assignments)))

	return &dto.CounselorResult{
		Counselor: updated,
		UploadURL: uploadURL,
	}, nil
}

// Delete soft-deletes the record: the active flag flips and deletion is
// stamped, but the item stays readable and scannable. The attachment
// object, if any, is removed afterwards.
func (s *counselorServiceImpl) Delete(ctx context.Context, counselorID, currentUser string) (*dto.DeleteCounselorResult, error) {
	current, err := s.repo.Get(ctx, counselorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Counselor not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeStore, "Failed to retrieve counselor", err.Error())
	}

	now := domain.Now()
	assignments := map[string]interface{}{
		"active":     false,
		"deleted_by": currentUser,
		"deleted_at": now,
		"updated_by": currentUser,
		"updated_at": now,
	}

	if _, err := s.repo.UpdateFields(ctx, counselorID, assignments); err != nil {
		s.logger.Error("Failed to delete counselor",
			zap.String("counselor_id", counselorID),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeStore, "Failed to delete counselor", err.Error())
	}

	s.metrics.RecordCounselorDeleted()

	if current.PhotoKey != "" {
		if err := s.s3Client.DeleteFile(ctx, current.PhotoKey); err != nil {
			// The record is already inactive at this point. The distinct
			// code lets callers tell this partial outcome from a failed
			// delete.
			s.logger.Error("Counselor deleted but attachment cleanup failed",
				zap.String("counselor_id", counselorID),
				zap.String("photo_key", current.PhotoKey),
				zap.Error(err))
			return nil, response.NewAppError(response.ErrCodeAttachmentCleanup,
				"Counselor deleted but attachment cleanup failed", err.Error())
		}
	}

	s.logger.Info("Counselor deleted",
		zap.String("counselor_id", counselorID),
		zap.String("deleted_by", currentUser))

	return &dto.DeleteCounselorResult{
		CounselorID: counselorID,
		DeletedBy:   currentUser,
		DeletedAt:   now,
	}, nil
}

// storeAttachment issues a presigned upload URL or uploads the bytes
// directly, depending on the configured mode. Returns the URL the caller
// must PUT to, empty in direct mode.
func (s *counselorServiceImpl) storeAttachment(ctx context.Context, key string, photo *dto.PhotoUpload) (string, error) {
	contentType := domain.PhotoContentType(photo.FileName)

	if s.presignUploads {
		uploadURL, err := s.s3Client.PresignUpload(ctx, key, contentType)
		if err != nil {
			s.logger.Error("Failed to issue presigned upload URL",
				zap.String("photo_key", key),
				zap.Error(err))
			return "", response.NewAppError(response.ErrCodeStore, "Failed to issue upload URL", err.Error())
		}
		return uploadURL, nil
	}

	if photo.File == nil {
		return "", response.NewAppError(response.ErrCodeValidation, "Photo file content is required", "")
	}
	if _, err := s.s3Client.UploadFile(ctx, key, photo.File, contentType); err != nil {
		s.logger.Error("Failed to upload attachment",
			zap.String("photo_key", key),
			zap.Error(err))
		return "", response.NewAppError(response.ErrCodeStore, "Failed to upload attachment", err.Error())
	}
	return "", nil
}
