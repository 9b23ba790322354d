package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovax/lunch-api/internal/dto"
	"github.com/innovax/lunch-api/internal/models"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
)

type reportReaderStub struct {
	rows     []models.LunchRecordDetail
	captured models.LunchRecordFilter
	calls    int
}

func (s *reportReaderStub) ListForReport(_ context.Context, filter models.LunchRecordFilter) ([]models.LunchRecordDetail, error) {
	s.captured = filter
	s.calls++
	return s.rows, nil
}

type reportCacheStub struct {
	store map[string]*dto.ReportResult
	sets  int
}

func (s *reportCacheStub) Get(_ context.Context, key string, dest interface{}) error {
	if cached, ok := s.store[key]; ok {
		*(dest.(*dto.ReportResult)) = *cached
		return nil
	}
	return appErrors.ErrCacheMiss
}

func (s *reportCacheStub) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	result := value.(*dto.ReportResult)
	copied := *result
	s.store[key] = &copied
	s.sets++
	return nil
}

func sampleReportRows() []models.LunchRecordDetail {
	note := "extra rice"
	return []models.LunchRecordDetail{
		{
			LunchRecord: models.LunchRecord{
				ID: "rec-1", EmployeeID: "emp-1",
				Date:  time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
				State: models.RecordStateConfirmed,
			},
			EmployeeName: "Jane Doe", LunchTypeName: LunchTypeNonVeg, Cost: 180,
		},
		{
			LunchRecord: models.LunchRecord{
				ID: "rec-2", EmployeeID: "emp-2",
				Date:  time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
				Note:  &note,
				State: models.RecordStateConfirmed,
			},
			EmployeeName: "Ram Thapa", LunchTypeName: LunchTypeVeg, Cost: 120,
		},
	}
}

func newReportFixture(rows []models.LunchRecordDetail) (*ReportService, *reportReaderStub, *reportCacheStub) {
	reader := &reportReaderStub{rows: rows}
	cache := &reportCacheStub{store: map[string]*dto.ReportResult{}}
	svc := NewReportService(reader, cache, nil, nil, 5*time.Minute, nil, nil)
	return svc, reader, cache
}

func reportQuery() dto.ReportQuery {
	return dto.ReportQuery{DateFrom: "2025-06-01", DateTo: "2025-06-30"}
}

func TestReportAdminScopedToConfirmed(t *testing.T) {
	svc, reader, _ := newReportFixture(sampleReportRows())

	result, err := svc.Build(context.Background(), reportQuery(), adminClaims())
	require.NoError(t, err)

	require.NotNil(t, reader.captured.State)
	assert.Equal(t, models.RecordStateConfirmed, *reader.captured.State)
	assert.Empty(t, reader.captured.UserID)
	assert.Equal(t, 2, result.Count)
	assert.InDelta(t, 300.0, result.TotalCost, 0.001)
}

func TestReportAdminEmployeeFilter(t *testing.T) {
	svc, reader, _ := newReportFixture(nil)

	query := reportQuery()
	query.EmployeeID = "emp-2"
	_, err := svc.Build(context.Background(), query, adminClaims())
	require.NoError(t, err)
	assert.Equal(t, "emp-2", reader.captured.EmployeeID)
}

func TestReportEmployeeForcedToOwnRecords(t *testing.T) {
	svc, reader, _ := newReportFixture(nil)

	query := reportQuery()
	query.EmployeeID = "emp-2"
	_, err := svc.Build(context.Background(), query, employeeClaims())
	require.NoError(t, err)

	assert.Equal(t, "user-1", reader.captured.UserID)
	assert.Empty(t, reader.captured.EmployeeID)
	assert.Nil(t, reader.captured.State)
}

func TestReportInvertedRangeRejected(t *testing.T) {
	svc, _, _ := newReportFixture(nil)

	_, err := svc.Build(context.Background(), dto.ReportQuery{
		DateFrom: "2025-06-30",
		DateTo:   "2025-06-01",
	}, adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportServedFromCacheOnSecondCall(t *testing.T) {
	svc, reader, cache := newReportFixture(sampleReportRows())

	first, err := svc.Build(context.Background(), reportQuery(), adminClaims())
	require.NoError(t, err)
	assert.Equal(t, 1, reader.calls)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Build(context.Background(), reportQuery(), adminClaims())
	require.NoError(t, err)
	assert.Equal(t, 1, reader.calls)
	assert.Equal(t, first.TotalCost, second.TotalCost)
}

func TestReportCacheKeySeparatesScopes(t *testing.T) {
	svc, reader, _ := newReportFixture(sampleReportRows())

	_, err := svc.Build(context.Background(), reportQuery(), adminClaims())
	require.NoError(t, err)
	_, err = svc.Build(context.Background(), reportQuery(), employeeClaims())
	require.NoError(t, err)

	// Different scopes may never share a cache entry.
	assert.Equal(t, 2, reader.calls)
}

func TestReportRenderCSV(t *testing.T) {
	svc, _, _ := newReportFixture(sampleReportRows())

	out, err := svc.RenderCSV(context.Background(), reportQuery(), adminClaims())
	require.NoError(t, err)

	text := string(out)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Employee,Date,Day,Lunch Type,Cost,State,Remarks", lines[0])
	assert.Contains(t, text, "Jane Doe,2025-06-02,Monday,Non-Veg,180.00,confirmed,")
	assert.Contains(t, text, "extra rice")
}

func TestReportRenderPDFProducesDocument(t *testing.T) {
	svc, _, _ := newReportFixture(sampleReportRows())

	out, err := svc.RenderPDF(context.Background(), reportQuery(), adminClaims())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
