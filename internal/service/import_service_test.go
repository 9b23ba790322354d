package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovax/lunch-api/internal/models"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
)

type importRecordStoreStub struct {
	active  map[string]*models.LunchRecord
	created []*models.LunchRecord
	updated []*models.LunchRecord
}

func (s *importRecordStoreStub) Create(_ context.Context, record *models.LunchRecord) error {
	s.created = append(s.created, record)
	return nil
}

func (s *importRecordStoreStub) FindActive(_ context.Context, employeeID string, date time.Time) (*models.LunchRecord, error) {
	key := employeeID + "|" + date.Format("2006-01-02")
	if rec, ok := s.active[key]; ok {
		return rec, nil
	}
	return nil, sql.ErrNoRows
}

func (s *importRecordStoreStub) Update(_ context.Context, record *models.LunchRecord) error {
	s.updated = append(s.updated, record)
	return nil
}

func newImportFixture() (*ImportService, *importRecordStoreStub) {
	store := &importRecordStoreStub{active: map[string]*models.LunchRecord{}}
	veg := &models.LunchType{ID: "lt-veg", Name: LunchTypeVeg, Cost: 120}
	nonVeg := &models.LunchType{ID: "lt-nonveg", Name: LunchTypeNonVeg, Cost: 180}
	types := &typeReaderStub{
		byName: map[string]*models.LunchType{LunchTypeVeg: veg, LunchTypeNonVeg: nonVeg},
	}
	employees := &importEmployeeStub{
		byName: map[string]*models.Employee{
			"jane doe":  {ID: "emp-1", Name: "Jane Doe"},
			"ram thapa": {ID: "emp-2", Name: "Ram Thapa"},
		},
	}

	svc := NewImportService(store, employees, types, WeekdayMenuRule{}, nil, nil)
	return svc, store
}

type importEmployeeStub struct {
	byName map[string]*models.Employee
}

func (s *importEmployeeStub) FindByName(_ context.Context, name string) (*models.Employee, error) {
	if emp, ok := s.byName[strings.ToLower(name)]; ok {
		return emp, nil
	}
	return nil, sql.ErrNoRows
}

const importHeader = "Employee Name,Date,Lunch Type,State,Remarks\n"

func TestImportCreatesRecords(t *testing.T) {
	svc, store := newImportFixture()

	csvBody := importHeader +
		"Jane Doe,2025-06-04,Veg,confirmed,\n" +
		"Ram Thapa,2025-06-04,Veg,draft,half plate\n"

	summary, err := svc.Import(context.Background(), strings.NewReader(csvBody), adminClaims())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 0, summary.Errors)
	require.Len(t, store.created, 2)
	assert.Equal(t, models.RecordStateConfirmed, store.created[0].State)
	assert.Equal(t, models.RecordStateDraft, store.created[1].State)
	require.NotNil(t, store.created[1].Note)
	assert.Equal(t, "half plate", *store.created[1].Note)
}

func TestImportRequiresAdmin(t *testing.T) {
	svc, _ := newImportFixture()

	_, err := svc.Import(context.Background(), strings.NewReader(importHeader), employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestImportUnknownEmployeeIsolatedPerRow(t *testing.T) {
	svc, store := newImportFixture()

	csvBody := importHeader +
		"Nobody Here,2025-06-04,Veg,confirmed,\n" +
		"Jane Doe,2025-06-04,Veg,confirmed,\n"

	summary, err := svc.Import(context.Background(), strings.NewReader(csvBody), adminClaims())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Errors)
	require.Len(t, summary.Details, 1)
	assert.Contains(t, summary.Details[0], "Row 2")
	assert.Contains(t, summary.Details[0], "Nobody Here")
	require.Len(t, store.created, 1)
}

func TestImportSkipsHolidayRows(t *testing.T) {
	svc, store := newImportFixture()

	// 2025-06-07 is a Saturday.
	csvBody := importHeader +
		"Jane Doe,2025-06-07,Veg,confirmed,\n" +
		"Jane Doe,2025-06-08,Veg,confirmed,\n"

	summary, err := svc.Import(context.Background(), strings.NewReader(csvBody), adminClaims())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Imported)
	require.Len(t, store.created, 1)
}

func TestImportDefaultsMissingTypeAndState(t *testing.T) {
	svc, store := newImportFixture()

	// Monday with no type and an unknown state value.
	csvBody := importHeader + "Jane Doe,2025-06-09,,whatever,\n"

	summary, err := svc.Import(context.Background(), strings.NewReader(csvBody), adminClaims())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	require.Len(t, store.created, 1)
	assert.Equal(t, "lt-nonveg", store.created[0].LunchTypeID)
	assert.Equal(t, models.RecordStateConfirmed, store.created[0].State)
}

func TestImportUpdatesExistingActiveRecord(t *testing.T) {
	svc, store := newImportFixture()
	store.active["emp-1|2025-06-04"] = &models.LunchRecord{
		ID: "rec-1", EmployeeID: "emp-1",
		Date:  time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		State: models.RecordStateDraft,
	}

	csvBody := importHeader + "Jane Doe,2025-06-04,Veg,confirmed,updated\n"

	summary, err := svc.Import(context.Background(), strings.NewReader(csvBody), adminClaims())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Empty(t, store.created)
	require.Len(t, store.updated, 1)
	assert.Equal(t, models.RecordStateConfirmed, store.updated[0].State)
}

func TestImportErrorDetailCap(t *testing.T) {
	svc, _ := newImportFixture()

	var sb strings.Builder
	sb.WriteString(importHeader)
	for i := 0; i < 25; i++ {
		sb.WriteString(fmt.Sprintf("Ghost %d,2025-06-04,Veg,confirmed,\n", i))
	}

	summary, err := svc.Import(context.Background(), strings.NewReader(sb.String()), adminClaims())
	require.NoError(t, err)

	assert.Equal(t, 25, summary.Errors)
	assert.Equal(t, 5, summary.Truncated)
	require.Len(t, summary.Details, maxImportErrorDetails+1)
	assert.Contains(t, summary.Details[maxImportErrorDetails], "and 5 more errors")
}

func TestImportRejectsMissingColumns(t *testing.T) {
	svc, _ := newImportFixture()

	_, err := svc.Import(context.Background(), strings.NewReader("Name,When\nJane,2025-06-04\n"), adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportTemplateHasHeaders(t *testing.T) {
	svc, _ := newImportFixture()

	out, err := svc.Template()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "Employee Name,Date,Lunch Type,State,Remarks"))
}
