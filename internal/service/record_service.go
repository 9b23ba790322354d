package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/innovax/lunch-api/internal/dto"
	"github.com/innovax/lunch-api/internal/models"
	"github.com/innovax/lunch-api/internal/repository"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type recordRepository interface {
	Create(ctx context.Context, record *models.LunchRecord) error
	FindByID(ctx context.Context, id string) (*models.LunchRecordDetail, error)
	FindActive(ctx context.Context, employeeID string, date time.Time) (*models.LunchRecord, error)
	List(ctx context.Context, filter models.LunchRecordFilter) ([]models.LunchRecordDetail, int, error)
	Update(ctx context.Context, record *models.LunchRecord) error
	SetState(ctx context.Context, id string, state models.RecordState) error
}

type recordEmployeeReader interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	FindByUserID(ctx context.Context, userID string) (*models.Employee, error)
}

type recordTypeReader interface {
	FindByID(ctx context.Context, id string) (*models.LunchType, error)
	FindByName(ctx context.Context, name string) (*models.LunchType, error)
}

type recordTimingReader interface {
	Get(ctx context.Context) (*models.LunchTiming, error)
}

type recordAuditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type recordCacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

type recordMetrics interface {
	IncRecordCreated()
	IncRecordConfirmed()
}

// RecordService owns the lunch record lifecycle: creation, the
// draft/requested/confirmed/cancelled state machine, the confirmation
// window gate and the admin-fill workflow. Every mutation passes through
// here; nothing edits employee, date or state behind its back.
type RecordService struct {
	repo      recordRepository
	employees recordEmployeeReader
	types     recordTypeReader
	timing    recordTimingReader
	audit     recordAuditLogger
	cache     recordCacheInvalidator
	metrics   recordMetrics
	rule      MenuRule
	clock     Clock
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRecordService constructs a RecordService.
func NewRecordService(
	repo recordRepository,
	employees recordEmployeeReader,
	types recordTypeReader,
	timing recordTimingReader,
	audit recordAuditLogger,
	cache recordCacheInvalidator,
	metrics recordMetrics,
	rule MenuRule,
	clock Clock,
	validate *validator.Validate,
	logger *zap.Logger,
) *RecordService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if rule == nil {
		rule = WeekdayMenuRule{}
	}
	return &RecordService{
		repo:      repo,
		employees: employees,
		types:     types,
		timing:    timing,
		audit:     audit,
		cache:     cache,
		metrics:   metrics,
		rule:      rule,
		clock:     clock,
		validator: validate,
		logger:    logger,
	}
}

// Create registers a new record in draft state. Non-admin callers are
// forced onto their own employee identity and blocked on the holiday
// weekday; the lunch type is resolved from the weekday rule unless an
// admin explicitly overrides it.
func (s *RecordService) Create(ctx context.Context, req dto.CreateLunchRecordRequest, actor *models.JWTClaims) (*dto.LunchRecordResponse, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid record payload")
	}

	employee, err := s.resolveEmployee(ctx, req.EmployeeID, actor)
	if err != nil {
		return nil, err
	}

	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	if s.rule.IsHoliday(date) && !actor.IsAdmin() {
		return nil, appErrors.ErrHoliday
	}

	lunchType, err := s.resolveLunchType(ctx, req.LunchTypeID, date, actor)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoActiveRecord(ctx, employee, date); err != nil {
		return nil, err
	}

	record := &models.LunchRecord{
		EmployeeID:  employee.ID,
		Date:        date,
		LunchTypeID: lunchType.ID,
		Note:        optionalString(req.Note),
		State:       models.RecordStateDraft,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, s.mapCreateError(err, employee, date)
	}

	s.invalidateReports(ctx)
	if s.metrics != nil {
		s.metrics.IncRecordCreated()
	}

	return s.detailResponse(record, employee.Name, lunchType), nil
}

// AdminFill creates a confirmed record on behalf of an employee and closes
// any outstanding fill request for that employee and date.
func (s *RecordService) AdminFill(ctx context.Context, req dto.AdminFillRequest, actor *models.JWTClaims) (*dto.LunchRecordResponse, error) {
	if actor == nil || !actor.CanActForOthers() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admins can fill records on behalf of employees")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admin fill payload")
	}

	employee, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch employee")
	}

	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	lunchType, err := s.resolveLunchType(ctx, req.LunchTypeID, date, actor)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoActiveRecord(ctx, employee, date); err != nil {
		return nil, err
	}

	note := req.Note
	if note == "" {
		note = "Created by admin"
	}
	record := &models.LunchRecord{
		EmployeeID:     employee.ID,
		Date:           date,
		LunchTypeID:    lunchType.ID,
		Note:           optionalString(note),
		State:          models.RecordStateConfirmed,
		IsAdminRequest: true,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, s.mapCreateError(err, employee, date)
	}

	s.emitRecordAudit(ctx, actor, models.AuditActionFillClosed, record, employee.Name, lunchType.Name)
	s.invalidateReports(ctx)
	if s.metrics != nil {
		s.metrics.IncRecordCreated()
		s.metrics.IncRecordConfirmed()
	}

	return s.detailResponse(record, employee.Name, lunchType), nil
}

// RequestAdminFill moves a draft record to requested and notifies admins
// through the audit trail.
func (s *RecordService) RequestAdminFill(ctx context.Context, id string, actor *models.JWTClaims) (*dto.LunchRecordResponse, error) {
	record, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if record.State != models.RecordStateDraft {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "only draft records can be requested")
	}

	if err := s.repo.SetState(ctx, record.ID, models.RecordStateRequested); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to request admin fill")
	}
	record.State = models.RecordStateRequested

	s.emitRecordAudit(ctx, actor, models.AuditActionFillRequest, &record.LunchRecord, record.EmployeeName, record.LunchTypeName)
	s.invalidateReports(ctx)

	return recordDetailToResponse(record), nil
}

// Confirm transitions a draft or requested record to confirmed. Lunch
// timing must be configured. Requested records may only be confirmed by an
// admin; non-admin confirmation of a draft is gated by the time window.
func (s *RecordService) Confirm(ctx context.Context, id string, actor *models.JWTClaims) (*dto.LunchRecordResponse, error) {
	record, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if record.State == models.RecordStateRequested && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admin can confirm requested records, please wait for admin approval")
	}
	if record.State != models.RecordStateDraft && record.State != models.RecordStateRequested {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "only draft or requested records can be confirmed")
	}

	timing, err := s.timing.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrTimingNotConfigured, "lunch timing is not configured, please contact admin")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lunch timing")
	}

	if record.State != models.RecordStateRequested && !actor.IsAdmin() {
		hour := HourOfDay(s.clock.Now())
		if !WithinWindow(hour, timing.StartTime, timing.EndTime) {
			return nil, appErrors.Clone(appErrors.ErrOutOfWindow, fmt.Sprintf(
				"you cannot confirm lunch now, confirmation is only allowed between %s and %s (current time: %s)",
				FormatHour(timing.StartTime), FormatHour(timing.EndTime), FormatHour(hour)))
		}
	}

	wasRequested := record.State == models.RecordStateRequested
	if err := s.repo.SetState(ctx, record.ID, models.RecordStateConfirmed); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to confirm record")
	}
	record.State = models.RecordStateConfirmed

	if wasRequested && actor.IsAdmin() {
		s.emitRecordAudit(ctx, actor, models.AuditActionRecordConfirm, &record.LunchRecord, record.EmployeeName, record.LunchTypeName)
	}
	s.invalidateReports(ctx)
	if s.metrics != nil {
		s.metrics.IncRecordConfirmed()
	}

	return recordDetailToResponse(record), nil
}

// Cancel transitions a record to cancelled. Confirmed and requested
// records can only be cancelled by an admin; cancelled records stay
// cancelled.
func (s *RecordService) Cancel(ctx context.Context, id string, actor *models.JWTClaims) (*dto.LunchRecordResponse, error) {
	record, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if record.State == models.RecordStateCancelled {
		return nil, appErrors.ErrAlreadyCancelled
	}
	if (record.State == models.RecordStateConfirmed || record.State == models.RecordStateRequested) && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you cannot cancel a confirmed or requested lunch record, please contact admin")
	}

	if err := s.repo.SetState(ctx, record.ID, models.RecordStateCancelled); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel record")
	}
	record.State = models.RecordStateCancelled
	s.invalidateReports(ctx)

	return recordDetailToResponse(record), nil
}

// ResetToDraft unconditionally reopens a record. Admin only.
func (s *RecordService) ResetToDraft(ctx context.Context, id string, actor *models.JWTClaims) (*dto.LunchRecordResponse, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admin can reset to draft")
	}
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetState(ctx, record.ID, models.RecordStateDraft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset record")
	}
	record.State = models.RecordStateDraft
	s.invalidateReports(ctx)

	return recordDetailToResponse(record), nil
}

// Modify applies a partial edit. Employee and date changes are admin-only;
// confirmed and requested records are immutable to non-admins unless the
// edit goes through the state field.
func (s *RecordService) Modify(ctx context.Context, id string, req dto.ModifyLunchRecordRequest, actor *models.JWTClaims) (*dto.LunchRecordResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid modify payload")
	}
	record, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if (req.EmployeeID != nil || req.Date != nil) && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you cannot change the employee or lunch date, please contact admin")
	}
	immutable := record.State == models.RecordStateConfirmed || record.State == models.RecordStateRequested
	if req.State == nil && immutable && !actor.IsAdmin() {
		return nil, appErrors.ErrImmutableState
	}

	updated := record.LunchRecord
	if req.EmployeeID != nil {
		if _, err := s.employees.FindByID(ctx, *req.EmployeeID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch employee")
		}
		updated.EmployeeID = *req.EmployeeID
	}
	if req.Date != nil {
		date, err := s.resolveDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updated.Date = date
	}
	if req.LunchTypeID != nil {
		if _, err := s.types.FindByID(ctx, *req.LunchTypeID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "lunch type not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch lunch type")
		}
		updated.LunchTypeID = *req.LunchTypeID
	}
	if req.Note != nil {
		updated.Note = optionalString(*req.Note)
	}
	if req.State != nil {
		updated.State = models.RecordState(*req.State)
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrActiveRecordExists) {
			return nil, appErrors.ErrDuplicateRecord
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update record")
	}
	s.invalidateReports(ctx)

	return s.Get(ctx, id, actor)
}

// Get fetches one record, enforcing ownership for non-admin callers.
func (s *RecordService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*dto.LunchRecordResponse, error) {
	record, err := s.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return recordDetailToResponse(record), nil
}

// List returns record listings. Non-admin callers only ever see their own
// records regardless of the requested filter.
func (s *RecordService) List(ctx context.Context, query dto.ListLunchRecordsQuery, actor *models.JWTClaims) ([]dto.LunchRecordResponse, *models.Pagination, error) {
	if actor == nil {
		return nil, nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid list query")
	}

	filter := models.LunchRecordFilter{Page: query.Page, PageSize: query.PageSize}
	if actor.CanActForOthers() {
		filter.EmployeeID = query.EmployeeID
	} else {
		filter.UserID = actor.UserID
	}
	if query.DateFrom != "" {
		from, _ := time.Parse(dateLayout, query.DateFrom)
		filter.DateFrom = &from
	}
	if query.DateTo != "" {
		to, _ := time.Parse(dateLayout, query.DateTo)
		filter.DateTo = &to
	}
	if query.State != "" {
		state := models.RecordState(query.State)
		filter.State = &state
	}

	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list records")
	}

	items := make([]dto.LunchRecordResponse, 0, len(rows))
	for i := range rows {
		items = append(items, *recordDetailToResponse(&rows[i]))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	return items, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

func (s *RecordService) resolveEmployee(ctx context.Context, requestedID string, actor *models.JWTClaims) (*models.Employee, error) {
	if actor.CanActForOthers() && requestedID != "" {
		employee, err := s.employees.FindByID(ctx, requestedID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch employee")
		}
		return employee, nil
	}

	employee, err := s.employees.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoEmployeeIdentity
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve employee identity")
	}
	return employee, nil
}

func (s *RecordService) resolveDate(raw string) (time.Time, error) {
	if raw == "" {
		return NextLunchDate(s.clock), nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}
	return date, nil
}

func (s *RecordService) resolveLunchType(ctx context.Context, requestedID string, date time.Time, actor *models.JWTClaims) (*models.LunchType, error) {
	if actor.IsAdmin() && requestedID != "" {
		lunchType, err := s.types.FindByID(ctx, requestedID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "lunch type not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch lunch type")
		}
		return lunchType, nil
	}

	name := s.rule.TypeNameFor(date)
	lunchType, err := s.types.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("lunch type %q not found, please create it in configuration", name))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve lunch type")
	}
	return lunchType, nil
}

func (s *RecordService) ensureNoActiveRecord(ctx context.Context, employee *models.Employee, date time.Time) error {
	existing, err := s.repo.FindActive(ctx, employee.ID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check for existing record")
	}
	if existing != nil {
		return s.duplicateError(employee, date)
	}
	return nil
}

func (s *RecordService) mapCreateError(err error, employee *models.Employee, date time.Time) error {
	if errors.Is(err, repository.ErrActiveRecordExists) {
		return s.duplicateError(employee, date)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create record")
}

func (s *RecordService) duplicateError(employee *models.Employee, date time.Time) error {
	return appErrors.Clone(appErrors.ErrDuplicateRecord, fmt.Sprintf(
		"lunch record already exists for %s on %s, only one record per day is allowed",
		employee.Name, date.Format("January 02, 2006")))
}

// load fetches a record without ownership checks (admin paths).
func (s *RecordService) load(ctx context.Context, id string) (*models.LunchRecordDetail, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lunch record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch record")
	}
	return record, nil
}

// loadOwned fetches a record and verifies the actor may touch it.
func (s *RecordService) loadOwned(ctx context.Context, id string, actor *models.JWTClaims) (*models.LunchRecordDetail, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.CanActForOthers() {
		return record, nil
	}

	employee, err := s.employees.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNoEmployeeIdentity
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve employee identity")
	}
	if record.EmployeeID != employee.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you cannot modify other employees' lunch records")
	}
	return record, nil
}

func (s *RecordService) emitRecordAudit(ctx context.Context, actor *models.JWTClaims, action string, record *models.LunchRecord, employeeName, lunchTypeName string) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(map[string]string{
		"employee":   employeeName,
		"date":       record.Date.Format(dateLayout),
		"day":        record.Day(),
		"lunch_type": lunchTypeName,
	})
	log := &models.AuditLog{
		UserID:     actorID(actor),
		Action:     action,
		Resource:   "lunch_record",
		ResourceID: &record.ID,
		NewValues:  payload,
		IPAddress:  "system",
		UserAgent:  "record-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to record lunch audit", zap.Error(err))
	}
}

func (s *RecordService) invalidateReports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "lunch:report:*"); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}

func (s *RecordService) detailResponse(record *models.LunchRecord, employeeName string, lunchType *models.LunchType) *dto.LunchRecordResponse {
	detail := &models.LunchRecordDetail{
		LunchRecord:   *record,
		EmployeeName:  employeeName,
		LunchTypeName: lunchType.Name,
		Cost:          lunchType.Cost,
	}
	return recordDetailToResponse(detail)
}

func recordDetailToResponse(record *models.LunchRecordDetail) *dto.LunchRecordResponse {
	resp := &dto.LunchRecordResponse{
		ID:             record.ID,
		EmployeeID:     record.EmployeeID,
		EmployeeName:   record.EmployeeName,
		Date:           record.Date.Format(dateLayout),
		Day:            record.Day(),
		LunchTypeID:    record.LunchTypeID,
		LunchTypeName:  record.LunchTypeName,
		Cost:           record.Cost,
		State:          string(record.State),
		IsAdminRequest: record.IsAdminRequest,
	}
	if record.Note != nil {
		resp.Note = *record.Note
	}
	return resp
}
