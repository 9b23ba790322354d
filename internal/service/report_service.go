package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/innovax/lunch-api/internal/dto"
	"github.com/innovax/lunch-api/internal/models"
	"github.com/innovax/lunch-api/pkg/export"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
)

var reportHeaders = []string{"Employee", "Date", "Day", "Lunch Type", "Cost", "State", "Remarks"}

type reportRecordReader interface {
	ListForReport(ctx context.Context, filter models.LunchRecordFilter) ([]models.LunchRecordDetail, error)
}

type reportCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ReportService builds the lunch report projection. Admins query the whole
// confirmed ledger, optionally narrowed to one employee; everyone else only
// ever sees their own records.
type ReportService struct {
	records   reportRecordReader
	cache     reportCache
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs a ReportService. Cache may be nil; reports
// then recompute on every request.
func NewReportService(
	records reportRecordReader,
	cache reportCache,
	csvExporter *export.CSVExporter,
	pdfExporter *export.PDFExporter,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger *zap.Logger,
) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if csvExporter == nil {
		csvExporter = export.NewCSVExporter()
	}
	if pdfExporter == nil {
		pdfExporter = export.NewPDFExporter()
	}
	return &ReportService{
		records:   records,
		cache:     cache,
		csv:       csvExporter,
		pdf:       pdfExporter,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger,
	}
}

// Build assembles the report rows for the query under the actor's scope.
func (s *ReportService) Build(ctx context.Context, query dto.ReportQuery, actor *models.JWTClaims) (*dto.ReportResult, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report query")
	}

	from, err := time.Parse(dateLayout, query.DateFrom)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dateFrom must be formatted YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, query.DateTo)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dateTo must be formatted YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dateTo must not precede dateFrom")
	}

	filter := models.LunchRecordFilter{DateFrom: &from, DateTo: &to}
	if actor.IsAdmin() {
		confirmed := models.RecordStateConfirmed
		filter.State = &confirmed
		filter.EmployeeID = query.EmployeeID
	} else {
		filter.UserID = actor.UserID
	}

	key := reportCacheKey(filter, query)
	if s.cache != nil {
		var cached dto.ReportResult
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("report cache read failed", zap.Error(err))
		}
	}

	rows, err := s.records.ListForReport(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build report")
	}

	result := &dto.ReportResult{Rows: make([]dto.ReportRow, 0, len(rows)), Count: len(rows)}
	for i := range rows {
		row := &rows[i]
		item := dto.ReportRow{
			EmployeeName:  row.EmployeeName,
			Date:          row.Date.Format(dateLayout),
			Day:           row.Day(),
			LunchTypeName: row.LunchTypeName,
			Cost:          row.Cost,
			State:         string(row.State),
		}
		if row.Note != nil {
			item.Note = *row.Note
		}
		result.Rows = append(result.Rows, item)
		result.TotalCost += row.Cost
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.Warn("report cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

// RenderCSV exports the report as CSV bytes.
func (s *ReportService) RenderCSV(ctx context.Context, query dto.ReportQuery, actor *models.JWTClaims) ([]byte, error) {
	result, err := s.Build(ctx, query, actor)
	if err != nil {
		return nil, err
	}
	out, err := s.csv.Render(reportDataset(result))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
	}
	return out, nil
}

// RenderPDF exports the report as a PDF document.
func (s *ReportService) RenderPDF(ctx context.Context, query dto.ReportQuery, actor *models.JWTClaims) ([]byte, error) {
	result, err := s.Build(ctx, query, actor)
	if err != nil {
		return nil, err
	}
	subtitle := fmt.Sprintf("Period: %s - %s", query.DateFrom, query.DateTo)
	out, err := s.pdf.Render(reportDataset(result), "Lunch Report", subtitle)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
	}
	return out, nil
}

func reportDataset(result *dto.ReportResult) export.Dataset {
	rows := make([]map[string]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, map[string]string{
			"Employee":   row.EmployeeName,
			"Date":       row.Date,
			"Day":        row.Day,
			"Lunch Type": row.LunchTypeName,
			"Cost":       fmt.Sprintf("%.2f", row.Cost),
			"State":      row.State,
			"Remarks":    row.Note,
		})
	}
	return export.Dataset{Headers: reportHeaders, Rows: rows}
}

func reportCacheKey(filter models.LunchRecordFilter, query dto.ReportQuery) string {
	scope := "all"
	if filter.UserID != "" {
		scope = "user:" + filter.UserID
	} else if filter.EmployeeID != "" {
		scope = "emp:" + filter.EmployeeID
	}
	return fmt.Sprintf("lunch:report:%s:%s:%s", scope, query.DateFrom, query.DateTo)
}
