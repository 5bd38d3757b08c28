package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"counselor-api/internal/dto"
	"counselor-api/internal/response"
	"counselor-api/internal/service"
)

// CounselorHandler handles counselor CRUD requests
type CounselorHandler struct {
	service service.CounselorService
	logger  *zap.Logger
}

// NewCounselorHandler creates a new CounselorHandler
func NewCounselorHandler(svc service.CounselorService, logger *zap.Logger) *CounselorHandler {
	return &CounselorHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateCounselor handles POST /create_counselor. Expects multipart form
// fields plus an optional "photo" file part. Responds 201 with the
// stored record and, in presign mode, the upload URL for the file bytes.
func (h *CounselorHandler) CreateCounselor(c *gin.Context) {
	var req dto.CreateCounselorRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form data")
		return
	}

	photo, err := formPhoto(c)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read photo file")
		return
	}
	defer closePhoto(photo)

	result, err := h.service.Create(c.Request.Context(), &req, photo, currentUser(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendMessage(c, http.StatusCreated, "Counselor created successfully", result)
}

// GetCounselors handles GET /get_counselors. Soft-deleted records are
// included unless active_only=true is passed.
func (h *CounselorHandler) GetCounselors(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	counselors, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.ListCounselorsResult{
		Counselors: counselors,
		Count:      len(counselors),
	})
}

// GetCounselor handles GET /get_counselor/:counselorId
func (h *CounselorHandler) GetCounselor(c *gin.Context) {
	counselorID := c.Param("counselorId")

	counselor, err := h.service.GetByID(c.Request.Context(), counselorID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, counselor)
}

// UpdateCounselor handles PUT /update_counselor/:counselorId. Only
// supplied fields whose value differs from the stored record are
// written; a payload matching the stored values is a successful no-op.
func (h *CounselorHandler) UpdateCounselor(c *gin.Context) {
	counselorID := c.Param("counselorId")

	var req dto.UpdateCounselorRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form data")
		return
	}

	photo, err := formPhoto(c)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read photo file")
		return
	}
	defer closePhoto(photo)

	result, err := h.service.Update(c.Request.Context(), counselorID, &req, photo, currentUser(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	if result.NoChanges {
		response.SendMessage(c, http.StatusOK, "No changes detected", result)
		return
	}
	response.SendMessage(c, http.StatusOK, "Counselor updated successfully", result)
}

// DeleteCounselor handles DELETE /delete_counselor/:counselorId. The
// record is soft-deleted: it stays readable with active=false.
func (h *CounselorHandler) DeleteCounselor(c *gin.Context) {
	counselorID := c.Param("counselorId")

	result, err := h.service.Delete(c.Request.Context(), counselorID, currentUser(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Counselor deleted successfully", result)
}
