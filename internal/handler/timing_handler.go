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

// TimingHandler exposes the confirmation window configuration.
type TimingHandler struct {
	timing *service.TimingService
	logger *zap.Logger
}

// NewTimingHandler constructs a TimingHandler.
func NewTimingHandler(timing *service.TimingService, logger *zap.Logger) *TimingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimingHandler{timing: timing, logger: logger}
}

// Get godoc
// @Summary Fetch the confirmation window
// @Tags lunch-config
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=dto.LunchTimingResponse}
// @Failure 412 {object} response.Envelope
// @Router /lunch/timing [get]
func (h *TimingHandler) Get(c *gin.Context) {
	result, err := h.timing.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Upsert godoc
// @Summary Replace the confirmation window
// @Tags lunch-config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpsertLunchTimingRequest true "window"
// @Success 200 {object} response.Envelope{data=dto.LunchTimingResponse}
// @Failure 400 {object} response.Envelope
// @Router /lunch/timing [put]
func (h *TimingHandler) Upsert(c *gin.Context) {
	var req dto.UpsertLunchTimingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid timing payload"))
		return
	}
	result, err := h.timing.Upsert(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
