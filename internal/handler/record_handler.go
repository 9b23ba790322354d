package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/innovax/lunch-api/internal/dto"
	"github.com/innovax/lunch-api/internal/service"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
	"github.com/innovax/lunch-api/pkg/response"
)

// RecordHandler exposes the lunch record lifecycle endpoints.
type RecordHandler struct {
	records *service.RecordService
	logger  *zap.Logger
}

// NewRecordHandler constructs a RecordHandler.
func NewRecordHandler(records *service.RecordService, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{records: records, logger: logger}
}

// Create godoc
// @Summary Create a lunch record in draft state
// @Tags lunch-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateLunchRecordRequest true "record"
// @Success 201 {object} response.Envelope{data=dto.LunchRecordResponse}
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /lunch/records [post]
func (h *RecordHandler) Create(c *gin.Context) {
	var req dto.CreateLunchRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid record payload"))
		return
	}
	result, err := h.records.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// AdminFill godoc
// @Summary Create a confirmed record on behalf of an employee
// @Tags lunch-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.AdminFillRequest true "record"
// @Success 201 {object} response.Envelope{data=dto.LunchRecordResponse}
// @Failure 403 {object} response.Envelope
// @Router /lunch/admin-fill [post]
func (h *RecordHandler) AdminFill(c *gin.Context) {
	var req dto.AdminFillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid admin fill payload"))
		return
	}
	result, err := h.records.AdminFill(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List lunch records
// @Tags lunch-records
// @Produce json
// @Security BearerAuth
// @Param employeeId query string false "employee filter (admin only)"
// @Param dateFrom query string false "start date YYYY-MM-DD"
// @Param dateTo query string false "end date YYYY-MM-DD"
// @Param state query string false "state filter"
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} response.Envelope{data=[]dto.LunchRecordResponse}
// @Router /lunch/records [get]
func (h *RecordHandler) List(c *gin.Context) {
	var query dto.ListLunchRecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid list query"))
		return
	}
	items, pagination, err := h.records.List(c.Request.Context(), query, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Fetch one lunch record
// @Tags lunch-records
// @Produce json
// @Security BearerAuth
// @Param id path string true "record id"
// @Success 200 {object} response.Envelope{data=dto.LunchRecordResponse}
// @Failure 404 {object} response.Envelope
// @Router /lunch/records/{id} [get]
func (h *RecordHandler) Get(c *gin.Context) {
	result, err := h.records.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Modify godoc
// @Summary Edit a lunch record
// @Tags lunch-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "record id"
// @Param payload body dto.ModifyLunchRecordRequest true "partial edit"
// @Success 200 {object} response.Envelope{data=dto.LunchRecordResponse}
// @Failure 409 {object} response.Envelope
// @Router /lunch/records/{id} [patch]
func (h *RecordHandler) Modify(c *gin.Context) {
	var req dto.ModifyLunchRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid modify payload"))
		return
	}
	result, err := h.records.Modify(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Confirm godoc
// @Summary Confirm a lunch record
// @Tags lunch-records
// @Produce json
// @Security BearerAuth
// @Param id path string true "record id"
// @Success 200 {object} response.Envelope{data=dto.LunchRecordResponse}
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /lunch/records/{id}/confirm [post]
func (h *RecordHandler) Confirm(c *gin.Context) {
	result, err := h.records.Confirm(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Cancel godoc
// @Summary Cancel a lunch record
// @Tags lunch-records
// @Produce json
// @Security BearerAuth
// @Param id path string true "record id"
// @Success 200 {object} response.Envelope{data=dto.LunchRecordResponse}
// @Failure 409 {object} response.Envelope
// @Router /lunch/records/{id}/cancel [post]
func (h *RecordHandler) Cancel(c *gin.Context) {
	result, err := h.records.Cancel(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Reset godoc
// @Summary Reset a record to draft
// @Tags lunch-records
// @Produce json
// @Security BearerAuth
// @Param id path string true "record id"
// @Success 200 {object} response.Envelope{data=dto.LunchRecordResponse}
// @Failure 403 {object} response.Envelope
// @Router /lunch/records/{id}/reset [post]
func (h *RecordHandler) Reset(c *gin.Context) {
	result, err := h.records.ResetToDraft(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// RequestFill godoc
// @Summary Ask an admin to handle a draft record
// @Tags lunch-records
// @Produce json
// @Security BearerAuth
// @Param id path string true "record id"
// @Success 200 {object} response.Envelope{data=dto.LunchRecordResponse}
// @Failure 409 {object} response.Envelope
// @Router /lunch/records/{id}/request-fill [post]
func (h *RecordHandler) RequestFill(c *gin.Context) {
	result, err := h.records.RequestAdminFill(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
