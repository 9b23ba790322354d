package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovax/lunch-api/internal/dto"
	"github.com/innovax/lunch-api/internal/models"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
)

type recordRepoStub struct {
	createFn     func(ctx context.Context, record *models.LunchRecord) error
	findByIDFn   func(ctx context.Context, id string) (*models.LunchRecordDetail, error)
	findActiveFn func(ctx context.Context, employeeID string, date time.Time) (*models.LunchRecord, error)
	listFn       func(ctx context.Context, filter models.LunchRecordFilter) ([]models.LunchRecordDetail, int, error)
	updateFn     func(ctx context.Context, record *models.LunchRecord) error
	setStateFn   func(ctx context.Context, id string, state models.RecordState) error

	setStates []models.RecordState
	created   []*models.LunchRecord
}

func (s *recordRepoStub) Create(ctx context.Context, record *models.LunchRecord) error {
	s.created = append(s.created, record)
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, record)
}

func (s *recordRepoStub) FindByID(ctx context.Context, id string) (*models.LunchRecordDetail, error) {
	if s.findByIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return s.findByIDFn(ctx, id)
}

func (s *recordRepoStub) FindActive(ctx context.Context, employeeID string, date time.Time) (*models.LunchRecord, error) {
	if s.findActiveFn == nil {
		return nil, sql.ErrNoRows
	}
	return s.findActiveFn(ctx, employeeID, date)
}

func (s *recordRepoStub) List(ctx context.Context, filter models.LunchRecordFilter) ([]models.LunchRecordDetail, int, error) {
	if s.listFn == nil {
		return nil, 0, nil
	}
	return s.listFn(ctx, filter)
}

func (s *recordRepoStub) Update(ctx context.Context, record *models.LunchRecord) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, record)
}

func (s *recordRepoStub) SetState(ctx context.Context, id string, state models.RecordState) error {
	s.setStates = append(s.setStates, state)
	if s.setStateFn == nil {
		return nil
	}
	return s.setStateFn(ctx, id, state)
}

type employeeReaderStub struct {
	byID     map[string]*models.Employee
	byUserID map[string]*models.Employee
}

func (s *employeeReaderStub) FindByID(_ context.Context, id string) (*models.Employee, error) {
	if emp, ok := s.byID[id]; ok {
		return emp, nil
	}
	return nil, sql.ErrNoRows
}

func (s *employeeReaderStub) FindByUserID(_ context.Context, userID string) (*models.Employee, error) {
	if emp, ok := s.byUserID[userID]; ok {
		return emp, nil
	}
	return nil, sql.ErrNoRows
}

type typeReaderStub struct {
	byID   map[string]*models.LunchType
	byName map[string]*models.LunchType
}

func (s *typeReaderStub) FindByID(_ context.Context, id string) (*models.LunchType, error) {
	if t, ok := s.byID[id]; ok {
		return t, nil
	}
	return nil, sql.ErrNoRows
}

func (s *typeReaderStub) FindByName(_ context.Context, name string) (*models.LunchType, error) {
	if t, ok := s.byName[name]; ok {
		return t, nil
	}
	return nil, sql.ErrNoRows
}

type cacheStub struct{ patterns []string }

func (s *cacheStub) DeleteByPattern(_ context.Context, pattern string) error {
	s.patterns = append(s.patterns, pattern)
	return nil
}

type metricsStub struct {
	created   int
	confirmed int
}

func (s *metricsStub) IncRecordCreated()   { s.created++ }
func (s *metricsStub) IncRecordConfirmed() { s.confirmed++ }

type recordServiceFixture struct {
	svc       *RecordService
	repo      *recordRepoStub
	employees *employeeReaderStub
	types     *typeReaderStub
	timing    *timingRepoStub
	audit     *auditStub
	cache     *cacheStub
	metrics   *metricsStub
	clock     fixedClock
}

// Tuesday 2025-06-03 at 12:00, inside the default 11:00-14:30 window.
func newRecordServiceFixture() *recordServiceFixture {
	veg := &models.LunchType{ID: "lt-veg", Name: LunchTypeVeg, Cost: 120}
	nonVeg := &models.LunchType{ID: "lt-nonveg", Name: LunchTypeNonVeg, Cost: 180}

	f := &recordServiceFixture{
		repo: &recordRepoStub{},
		employees: &employeeReaderStub{
			byID: map[string]*models.Employee{
				"emp-1": {ID: "emp-1", Name: "Jane Doe", Active: true},
				"emp-2": {ID: "emp-2", Name: "Ram Thapa", Active: true},
			},
			byUserID: map[string]*models.Employee{
				"user-1": {ID: "emp-1", Name: "Jane Doe", Active: true},
			},
		},
		types: &typeReaderStub{
			byID:   map[string]*models.LunchType{"lt-veg": veg, "lt-nonveg": nonVeg},
			byName: map[string]*models.LunchType{LunchTypeVeg: veg, LunchTypeNonVeg: nonVeg},
		},
		timing: &timingRepoStub{
			getFn: func(context.Context) (*models.LunchTiming, error) {
				return &models.LunchTiming{StartTime: 11, EndTime: 14.5}, nil
			},
		},
		audit:   &auditStub{},
		cache:   &cacheStub{},
		metrics: &metricsStub{},
		clock:   fixedClock{now: time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)},
	}

	f.svc = NewRecordService(
		f.repo, f.employees, f.types, f.timing, f.audit, f.cache, f.metrics,
		WeekdayMenuRule{}, f.clock, nil, nil)
	return f
}

func employeeClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "user-1", Role: models.RoleEmployee}
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
}

func lunchAdminClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "ladmin-1", Role: models.RoleLunchAdmin}
}

func TestRecordCreateDefaultsToNextWorkingDay(t *testing.T) {
	f := newRecordServiceFixture()

	resp, err := f.svc.Create(context.Background(), dto.CreateLunchRecordRequest{}, employeeClaims())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-04", resp.Date)
	assert.Equal(t, string(models.RecordStateDraft), resp.State)
	assert.Equal(t, LunchTypeVeg, resp.LunchTypeName)
	assert.Equal(t, 1, f.metrics.created)
	assert.Contains(t, f.cache.patterns, "lunch:report:*")
}

func TestRecordCreateResolvesNonVegOnMonday(t *testing.T) {
	f := newRecordServiceFixture()

	resp, err := f.svc.Create(context.Background(), dto.CreateLunchRecordRequest{
		Date: "2025-06-09",
	}, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, LunchTypeNonVeg, resp.LunchTypeName)
}

func TestRecordCreateRejectsHolidayForEmployee(t *testing.T) {
	f := newRecordServiceFixture()

	_, err := f.svc.Create(context.Background(), dto.CreateLunchRecordRequest{
		Date: "2025-06-07",
	}, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrHoliday.Code, appErrors.FromError(err).Code)
}

func TestRecordCreateAllowsHolidayForAdmin(t *testing.T) {
	f := newRecordServiceFixture()

	_, err := f.svc.Create(context.Background(), dto.CreateLunchRecordRequest{
		EmployeeID: "emp-2",
		Date:       "2025-06-07",
	}, adminClaims())
	require.NoError(t, err)
}

func TestRecordCreateWithoutEmployeeIdentity(t *testing.T) {
	f := newRecordServiceFixture()

	actor := &models.JWTClaims{UserID: "user-unlinked", Role: models.RoleEmployee}
	_, err := f.svc.Create(context.Background(), dto.CreateLunchRecordRequest{}, actor)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoEmployeeIdentity.Code, appErrors.FromError(err).Code)
}

func TestRecordCreateDuplicateRejected(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findActiveFn = func(context.Context, string, time.Time) (*models.LunchRecord, error) {
		return &models.LunchRecord{ID: "rec-1", State: models.RecordStateConfirmed}, nil
	}

	_, err := f.svc.Create(context.Background(), dto.CreateLunchRecordRequest{}, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateRecord.Code, appErrors.FromError(err).Code)
}

func TestRecordCreateIgnoresEmployeeOverrideForEmployees(t *testing.T) {
	f := newRecordServiceFixture()

	resp, err := f.svc.Create(context.Background(), dto.CreateLunchRecordRequest{
		EmployeeID: "emp-2",
	}, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, "emp-1", resp.EmployeeID)
}

func TestRecordCreateLunchAdminPicksEmployee(t *testing.T) {
	f := newRecordServiceFixture()

	resp, err := f.svc.Create(context.Background(), dto.CreateLunchRecordRequest{
		EmployeeID: "emp-2",
	}, lunchAdminClaims())
	require.NoError(t, err)
	assert.Equal(t, "emp-2", resp.EmployeeID)
}

func TestRecordConfirmInsideWindow(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord:  models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateDraft, Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
			EmployeeName: "Jane Doe",
		}, nil
	}

	resp, err := f.svc.Confirm(context.Background(), "rec-1", employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, string(models.RecordStateConfirmed), resp.State)
	assert.Equal(t, 1, f.metrics.confirmed)
}

func TestRecordConfirmOutsideWindow(t *testing.T) {
	f := newRecordServiceFixture()
	f.clock = fixedClock{now: time.Date(2025, 6, 3, 15, 0, 0, 0, time.UTC)}
	f.svc = NewRecordService(
		f.repo, f.employees, f.types, f.timing, f.audit, f.cache, f.metrics,
		WeekdayMenuRule{}, f.clock, nil, nil)
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateDraft, Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
		}, nil
	}

	_, err := f.svc.Confirm(context.Background(), "rec-1", employeeClaims())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrOutOfWindow.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "11:00")
	assert.Contains(t, appErr.Message, "14:30")
}

func TestRecordConfirmAdminBypassesWindow(t *testing.T) {
	f := newRecordServiceFixture()
	f.clock = fixedClock{now: time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC)}
	f.svc = NewRecordService(
		f.repo, f.employees, f.types, f.timing, f.audit, f.cache, f.metrics,
		WeekdayMenuRule{}, f.clock, nil, nil)
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateDraft, Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
		}, nil
	}

	_, err := f.svc.Confirm(context.Background(), "rec-1", adminClaims())
	require.NoError(t, err)
}

func TestRecordConfirmRequestedNeedsAdmin(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateRequested, Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
		}, nil
	}

	_, err := f.svc.Confirm(context.Background(), "rec-1", employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestRecordConfirmRequestedByAdminWritesAudit(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord:  models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateRequested, Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
			EmployeeName: "Jane Doe",
		}, nil
	}

	_, err := f.svc.Confirm(context.Background(), "rec-1", adminClaims())
	require.NoError(t, err)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditActionRecordConfirm, f.audit.entries[0].Action)
}

func TestRecordConfirmCancelledRejected(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateCancelled, Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
		}, nil
	}

	_, err := f.svc.Confirm(context.Background(), "rec-1", employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)
}

func TestRecordConfirmWithoutTimingConfigured(t *testing.T) {
	f := newRecordServiceFixture()
	f.timing.getFn = nil
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateDraft, Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
		}, nil
	}

	_, err := f.svc.Confirm(context.Background(), "rec-1", employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTimingNotConfigured.Code, appErrors.FromError(err).Code)
}

func TestRecordConfirmWithoutTimingConfiguredFailsForAdmin(t *testing.T) {
	f := newRecordServiceFixture()
	f.timing.getFn = nil
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateDraft, Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
		}, nil
	}

	_, err := f.svc.Confirm(context.Background(), "rec-1", adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTimingNotConfigured.Code, appErrors.FromError(err).Code)
}

func TestRecordCancelAlreadyCancelled(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateCancelled},
		}, nil
	}

	_, err := f.svc.Cancel(context.Background(), "rec-1", employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyCancelled.Code, appErrors.FromError(err).Code)
}

func TestRecordCancelConfirmedNeedsAdmin(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateConfirmed},
		}, nil
	}

	_, err := f.svc.Cancel(context.Background(), "rec-1", employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = f.svc.Cancel(context.Background(), "rec-1", adminClaims())
	require.NoError(t, err)
}

func TestRecordCancelDraftByOwner(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateDraft},
		}, nil
	}

	resp, err := f.svc.Cancel(context.Background(), "rec-1", employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, string(models.RecordStateCancelled), resp.State)
}

func TestRecordResetRequiresAdmin(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateConfirmed},
		}, nil
	}

	_, err := f.svc.ResetToDraft(context.Background(), "rec-1", employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	resp, err := f.svc.ResetToDraft(context.Background(), "rec-1", adminClaims())
	require.NoError(t, err)
	assert.Equal(t, string(models.RecordStateDraft), resp.State)
}

func TestRecordRequestFillOnlyFromDraft(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateConfirmed},
		}, nil
	}

	_, err := f.svc.RequestAdminFill(context.Background(), "rec-1", employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)
}

func TestRecordRequestFillWritesAudit(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord:  models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateDraft, Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
			EmployeeName: "Jane Doe",
		}, nil
	}

	resp, err := f.svc.RequestAdminFill(context.Background(), "rec-1", employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, string(models.RecordStateRequested), resp.State)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditActionFillRequest, f.audit.entries[0].Action)
}

func TestAdminFillCreatesConfirmedRecord(t *testing.T) {
	f := newRecordServiceFixture()

	resp, err := f.svc.AdminFill(context.Background(), dto.AdminFillRequest{
		EmployeeID: "emp-2",
		Date:       "2025-06-04",
	}, lunchAdminClaims())
	require.NoError(t, err)

	assert.Equal(t, string(models.RecordStateConfirmed), resp.State)
	assert.True(t, resp.IsAdminRequest)
	assert.Equal(t, "Created by admin", resp.Note)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditActionFillClosed, f.audit.entries[0].Action)
}

func TestAdminFillForbiddenForEmployees(t *testing.T) {
	f := newRecordServiceFixture()

	_, err := f.svc.AdminFill(context.Background(), dto.AdminFillRequest{
		EmployeeID: "emp-2",
		Date:       "2025-06-04",
	}, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestRecordGetBlocksOtherEmployeesRecords(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-2", State: models.RecordStateDraft},
		}, nil
	}

	_, err := f.svc.Get(context.Background(), "rec-1", employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestRecordModifyEmployeeChangeAdminOnly(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateDraft},
		}, nil
	}

	other := "emp-2"
	_, err := f.svc.Modify(context.Background(), "rec-1", dto.ModifyLunchRecordRequest{
		EmployeeID: &other,
	}, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestRecordModifyConfirmedImmutableForEmployee(t *testing.T) {
	f := newRecordServiceFixture()
	f.repo.findByIDFn = func(context.Context, string) (*models.LunchRecordDetail, error) {
		return &models.LunchRecordDetail{
			LunchRecord: models.LunchRecord{ID: "rec-1", EmployeeID: "emp-1", State: models.RecordStateConfirmed},
		}, nil
	}

	note := "changed my mind"
	_, err := f.svc.Modify(context.Background(), "rec-1", dto.ModifyLunchRecordRequest{
		Note: &note,
	}, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrImmutableState.Code, appErrors.FromError(err).Code)
}

func TestRecordListForcesOwnScopeForEmployees(t *testing.T) {
	f := newRecordServiceFixture()
	var captured models.LunchRecordFilter
	f.repo.listFn = func(_ context.Context, filter models.LunchRecordFilter) ([]models.LunchRecordDetail, int, error) {
		captured = filter
		return nil, 0, nil
	}

	_, _, err := f.svc.List(context.Background(), dto.ListLunchRecordsQuery{
		EmployeeID: "emp-2",
	}, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, "user-1", captured.UserID)
	assert.Empty(t, captured.EmployeeID)
}

func TestRecordListAdminKeepsEmployeeFilter(t *testing.T) {
	f := newRecordServiceFixture()
	var captured models.LunchRecordFilter
	f.repo.listFn = func(_ context.Context, filter models.LunchRecordFilter) ([]models.LunchRecordDetail, int, error) {
		captured = filter
		return nil, 0, nil
	}

	_, _, err := f.svc.List(context.Background(), dto.ListLunchRecordsQuery{
		EmployeeID: "emp-2",
	}, adminClaims())
	require.NoError(t, err)
	assert.Equal(t, "emp-2", captured.EmployeeID)
	assert.Empty(t, captured.UserID)
}
