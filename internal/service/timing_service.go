package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/innovax/lunch-api/internal/dto"
	"github.com/innovax/lunch-api/internal/models"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
)

// WithinWindow is the confirmation window policy: an inclusive interval
// check on float hours. A window with end < start is a misconfiguration
// and matches no hour; wraparound across midnight is not supported.
func WithinWindow(hour, start, end float64) bool {
	return start <= hour && hour <= end
}

type timingRepository interface {
	Get(ctx context.Context) (*models.LunchTiming, error)
	Upsert(ctx context.Context, timing *models.LunchTiming) error
}

type timingAuditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// TimingService manages the confirmation window singleton.
type TimingService struct {
	repo      timingRepository
	audit     timingAuditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimingService constructs a TimingService.
func NewTimingService(repo timingRepository, audit timingAuditLogger, validate *validator.Validate, logger *zap.Logger) *TimingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimingService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// Get returns the configured window.
func (s *TimingService) Get(ctx context.Context) (*dto.LunchTimingResponse, error) {
	timing, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrTimingNotConfigured
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lunch timing")
	}
	return timingToResponse(timing), nil
}

// Upsert replaces the window configuration.
func (s *TimingService) Upsert(ctx context.Context, req dto.UpsertLunchTimingRequest, actor *models.JWTClaims) (*dto.LunchTimingResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timing payload")
	}
	if req.EndTime < req.StartTime {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end time must not precede start time; windows crossing midnight are not supported")
	}

	timing := &models.LunchTiming{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      optionalString(req.Note),
	}
	if err := s.repo.Upsert(ctx, timing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save lunch timing")
	}

	s.emitAudit(ctx, actor, req)

	return timingToResponse(timing), nil
}

func (s *TimingService) emitAudit(ctx context.Context, actor *models.JWTClaims, req dto.UpsertLunchTimingRequest) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"start_time": req.StartTime,
		"end_time":   req.EndTime,
	})
	log := &models.AuditLog{
		UserID:    actorID(actor),
		Action:    models.AuditActionTimingUpdate,
		Resource:  "lunch_timing",
		NewValues: payload,
		IPAddress: "system",
		UserAgent: "timing-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record timing audit", zap.Error(err))
	}
}

func timingToResponse(timing *models.LunchTiming) *dto.LunchTimingResponse {
	resp := &dto.LunchTimingResponse{
		StartTime:      timing.StartTime,
		EndTime:        timing.EndTime,
		StartFormatted: FormatHour(timing.StartTime),
		EndFormatted:   FormatHour(timing.EndTime),
	}
	if timing.Note != nil {
		resp.Note = *timing.Note
	}
	return resp
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	result := value
	return &result
}

func actorID(actor *models.JWTClaims) *string {
	if actor == nil || actor.UserID == "" {
		return nil
	}
	return &actor.UserID
}
