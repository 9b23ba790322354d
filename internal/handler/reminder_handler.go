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

// ReminderHandler exposes the reminder scheduler configuration and manual
// dispatch endpoints.
type ReminderHandler struct {
	reminders *service.ReminderService
	logger    *zap.Logger
}

// NewReminderHandler constructs a ReminderHandler.
func NewReminderHandler(reminders *service.ReminderService, logger *zap.Logger) *ReminderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderHandler{reminders: reminders, logger: logger}
}

// GetConfig godoc
// @Summary Fetch the reminder configuration
// @Tags lunch-reminder
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=dto.ReminderConfigResponse}
// @Failure 404 {object} response.Envelope
// @Router /lunch/reminder/config [get]
func (h *ReminderHandler) GetConfig(c *gin.Context) {
	result, err := h.reminders.GetConfig(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// UpdateConfig godoc
// @Summary Replace the reminder configuration
// @Tags lunch-reminder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateReminderConfigRequest true "config"
// @Success 200 {object} response.Envelope{data=dto.ReminderConfigResponse}
// @Failure 400 {object} response.Envelope
// @Router /lunch/reminder/config [put]
func (h *ReminderHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateReminderConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid reminder config payload"))
		return
	}
	result, err := h.reminders.UpdateConfig(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SendNow godoc
// @Summary Dispatch the reminder batch immediately
// @Tags lunch-reminder
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=dto.DispatchResult}
// @Failure 403 {object} response.Envelope
// @Router /lunch/reminder/send-now [post]
func (h *ReminderHandler) SendNow(c *gin.Context) {
	result, err := h.reminders.SendNow(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SendTest godoc
// @Summary Send a test reminder to the caller
// @Tags lunch-reminder
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /lunch/reminder/test [post]
func (h *ReminderHandler) SendTest(c *gin.Context) {
	if err := h.reminders.SendTest(c.Request.Context(), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "test reminder sent"}, nil)
}
