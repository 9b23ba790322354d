package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"text/template"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/innovax/lunch-api/internal/dto"
	"github.com/innovax/lunch-api/internal/models"
	"github.com/innovax/lunch-api/pkg/mailer"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
)

const (
	defaultReminderSubject = "Lunch Reminder - Fill Tomorrow's Form"

	defaultReminderBody = `<p>Dear {{.EmployeeName}},</p>
<p>This is a friendly reminder to fill your lunch form for tomorrow ({{.TomorrowDate}}).</p>
<p><a href="{{.LunchURL}}">Open the lunch portal</a> to confirm your record before the window closes.</p>
<p>Regards,<br/>HR Team</p>`
)

type reminderRepository interface {
	GetConfig(ctx context.Context) (*models.ReminderConfig, error)
	UpsertConfig(ctx context.Context, cfg *models.ReminderConfig) error
	SetLastSentDate(ctx context.Context, date *time.Time) error
	GetTemplate(ctx context.Context, id string) (*models.EmailTemplate, error)
	CreateTemplate(ctx context.Context, tpl *models.EmailTemplate) error
}

type reminderRecipientLister interface {
	FindByUserID(ctx context.Context, userID string) (*models.Employee, error)
	ListActiveWithEmail(ctx context.Context) ([]models.Employee, error)
}

type reminderAuditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type reminderMetrics interface {
	IncReminderSent()
	IncReminderFailed()
}

// ReminderService dispatches the daily lunch reminder email batch. Run is
// idempotent within a calendar day: the last-sent guard is written after
// the batch completes, whatever the send outcomes, so a pass that fails
// mid-batch does not repeat on the next poll.
type ReminderService struct {
	repo      reminderRepository
	employees reminderRecipientLister
	sender    mailer.Sender
	audit     reminderAuditLogger
	metrics   reminderMetrics
	clock     Clock
	portalURL string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReminderService constructs a ReminderService.
func NewReminderService(
	repo reminderRepository,
	employees reminderRecipientLister,
	sender mailer.Sender,
	audit reminderAuditLogger,
	metrics reminderMetrics,
	clock Clock,
	portalURL string,
	validate *validator.Validate,
	logger *zap.Logger,
) *ReminderService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		repo:      repo,
		employees: employees,
		sender:    sender,
		audit:     audit,
		metrics:   metrics,
		clock:     clock,
		portalURL: portalURL,
		validator: validate,
		logger:    logger,
	}
}

// Run executes one scheduler pass. Skips (inactive config, outside the
// dispatch window, already sent today) are reported in the result, not as
// errors, so the poller never backs off on them.
func (s *ReminderService) Run(ctx context.Context) (*dto.DispatchResult, error) {
	return s.run(ctx, nil)
}

func (s *ReminderService) run(ctx context.Context, actor *models.JWTClaims) (*dto.DispatchResult, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dto.DispatchResult{Skipped: true, Reason: "reminder config not set up"}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reminder config")
	}
	if !cfg.IsActive {
		return &dto.DispatchResult{Skipped: true, Reason: "reminder is disabled"}, nil
	}

	today := s.clock.Today()
	if cfg.LastSentDate != nil && sameDay(*cfg.LastSentDate, today) {
		return &dto.DispatchResult{Skipped: true, Reason: "already sent today"}, nil
	}

	hour := HourOfDay(s.clock.Now())
	if !WithinWindow(hour, cfg.EmailTime, cfg.EmailTime+1) {
		return &dto.DispatchResult{Skipped: true, Reason: "outside dispatch window"}, nil
	}

	return s.dispatch(ctx, cfg, actor)
}

// SendNow clears the daily guard and re-runs the scheduler pass. The guard
// is bypassed, the dispatch window is not. Admin action.
func (s *ReminderService) SendNow(ctx context.Context, actor *models.JWTClaims) (*dto.DispatchResult, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admin can trigger the reminder")
	}
	if _, err := s.repo.GetConfig(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "reminder config is not set up")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reminder config")
	}

	if err := s.repo.SetLastSentDate(ctx, nil); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear reminder guard")
	}

	return s.run(ctx, actor)
}

// SendTest delivers a single reminder to the actor's own work email without
// touching the daily guard.
func (s *ReminderService) SendTest(ctx context.Context, actor *models.JWTClaims) error {
	if actor == nil || !actor.IsAdmin() {
		return appErrors.Clone(appErrors.ErrForbidden, "only admin can send a test reminder")
	}

	employee, err := s.employees.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNoEmployeeIdentity
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve employee identity")
	}
	if employee.WorkEmail == nil || *employee.WorkEmail == "" {
		return appErrors.Clone(appErrors.ErrValidation, "your employee profile has no work email")
	}

	cfg, err := s.repo.GetConfig(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reminder config")
	}

	tpl, err := s.resolveTemplate(ctx, cfg)
	if err != nil {
		return err
	}

	subject, body, err := s.render(tpl, employee.Name)
	if err != nil {
		return err
	}
	if err := s.sender.Send(*employee.WorkEmail, subject, body); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send test reminder")
	}
	return nil
}

// GetConfig returns the scheduler configuration.
func (s *ReminderService) GetConfig(ctx context.Context) (*dto.ReminderConfigResponse, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "reminder config is not set up")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reminder config")
	}
	return reminderConfigToResponse(cfg), nil
}

// UpdateConfig replaces the scheduler configuration. The last-sent guard is
// preserved across updates.
func (s *ReminderService) UpdateConfig(ctx context.Context, req dto.UpdateReminderConfigRequest, actor *models.JWTClaims) (*dto.ReminderConfigResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reminder config payload")
	}

	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reminder config")
		}
		cfg = &models.ReminderConfig{}
	}
	cfg.EmailTime = req.EmailTime
	cfg.IsActive = req.IsActive

	if err := s.repo.UpsertConfig(ctx, cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save reminder config")
	}

	s.emitSchedulerAudit(ctx, actor, req)

	return reminderConfigToResponse(cfg), nil
}

func (s *ReminderService) dispatch(ctx context.Context, cfg *models.ReminderConfig, actor *models.JWTClaims) (*dto.DispatchResult, error) {
	recipients, err := s.employees.ListActiveWithEmail(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reminder recipients")
	}
	if len(recipients) == 0 {
		s.logger.Info("no eligible reminder recipients, guard stays unset")
		return &dto.DispatchResult{Skipped: true, Reason: "no eligible recipients"}, nil
	}

	tpl, err := s.resolveTemplate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	result := &dto.DispatchResult{Attempted: len(recipients)}
	for _, emp := range recipients {
		subject, body, err := s.render(tpl, emp.Name)
		if err != nil {
			result.Failed++
			s.logger.Error("failed to render reminder", zap.String("employee", emp.Name), zap.Error(err))
			continue
		}
		if err := s.sender.Send(*emp.WorkEmail, subject, body); err != nil {
			result.Failed++
			if s.metrics != nil {
				s.metrics.IncReminderFailed()
			}
			s.logger.Error("failed to send reminder", zap.String("employee", emp.Name), zap.Error(err))
			continue
		}
		result.Sent++
		if s.metrics != nil {
			s.metrics.IncReminderSent()
		}
	}

	// The guard goes down after the batch, whatever the outcome. A pass
	// where every send failed still counts as today's pass; retrying each
	// poll would spam whoever did receive mail.
	today := s.clock.Today()
	if err := s.repo.SetLastSentDate(ctx, &today); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark reminder dispatched")
	}
	cfg.LastSentDate = &today

	s.logger.Info("reminder pass finished",
		zap.Int("attempted", result.Attempted),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed))
	s.emitRunAudit(ctx, actor, result)

	return result, nil
}

// resolveTemplate loads the configured template, lazily creating the
// default one on first use.
func (s *ReminderService) resolveTemplate(ctx context.Context, cfg *models.ReminderConfig) (*models.EmailTemplate, error) {
	if cfg != nil && cfg.TemplateID != nil {
		tpl, err := s.repo.GetTemplate(ctx, *cfg.TemplateID)
		if err == nil {
			return tpl, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load email template")
		}
	}

	tpl := &models.EmailTemplate{
		Name:     "Lunch Reminder Default",
		Subject:  defaultReminderSubject,
		BodyHTML: defaultReminderBody,
	}
	if err := s.repo.CreateTemplate(ctx, tpl); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create default template")
	}
	if cfg != nil && cfg.ID != "" {
		cfg.TemplateID = &tpl.ID
		if err := s.repo.UpsertConfig(ctx, cfg); err != nil {
			s.logger.Warn("failed to link default template to reminder config", zap.Error(err))
		}
	}
	return tpl, nil
}

func (s *ReminderService) render(tpl *models.EmailTemplate, employeeName string) (string, string, error) {
	parsed, err := template.New("reminder").Parse(tpl.BodyHTML)
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid reminder template")
	}
	data := map[string]string{
		"EmployeeName": employeeName,
		"TomorrowDate": NextLunchDate(s.clock).Format("January 02, 2006"),
		"LunchURL":     s.portalURL,
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, data); err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render reminder template")
	}
	return tpl.Subject, buf.String(), nil
}

func (s *ReminderService) emitRunAudit(ctx context.Context, actor *models.JWTClaims, result *dto.DispatchResult) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(result)
	log := &models.AuditLog{
		UserID:    actorID(actor),
		Action:    models.AuditActionReminderRun,
		Resource:  "reminder",
		NewValues: payload,
		IPAddress: "system",
		UserAgent: "reminder-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record reminder audit", zap.Error(err))
	}
}

func (s *ReminderService) emitSchedulerAudit(ctx context.Context, actor *models.JWTClaims, req dto.UpdateReminderConfigRequest) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(req)
	log := &models.AuditLog{
		UserID:    actorID(actor),
		Action:    models.AuditActionSchedulerUpdate,
		Resource:  "reminder",
		NewValues: payload,
		IPAddress: "system",
		UserAgent: "reminder-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record scheduler audit", zap.Error(err))
	}
}

func reminderConfigToResponse(cfg *models.ReminderConfig) *dto.ReminderConfigResponse {
	resp := &dto.ReminderConfigResponse{
		Name:      cfg.Name,
		EmailTime: cfg.EmailTime,
		IsActive:  cfg.IsActive,
	}
	if cfg.LastSentDate != nil {
		resp.LastSentDate = cfg.LastSentDate.Format(dateLayout)
	}
	return resp
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
