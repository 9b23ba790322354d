package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/innovax/lunch-api/internal/dto"
	"github.com/innovax/lunch-api/internal/models"
	"github.com/innovax/lunch-api/internal/repository"
	"github.com/innovax/lunch-api/pkg/export"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
)

// maxImportErrorDetails caps the row-level messages returned to the caller.
const maxImportErrorDetails = 20

var importHeaders = []string{"Employee Name", "Date", "Lunch Type", "State", "Remarks"}

type importRecordStore interface {
	Create(ctx context.Context, record *models.LunchRecord) error
	FindActive(ctx context.Context, employeeID string, date time.Time) (*models.LunchRecord, error)
	Update(ctx context.Context, record *models.LunchRecord) error
}

type importEmployeeReader interface {
	FindByName(ctx context.Context, name string) (*models.Employee, error)
}

type importTypeReader interface {
	FindByName(ctx context.Context, name string) (*models.LunchType, error)
}

// ImportService ingests bulk lunch record uploads in CSV form. Rows fail
// independently; one bad line never aborts the batch.
type ImportService struct {
	records   importRecordStore
	employees importEmployeeReader
	types     importTypeReader
	rule      MenuRule
	csv       *export.CSVExporter
	logger    *zap.Logger
}

// NewImportService constructs an ImportService.
func NewImportService(
	records importRecordStore,
	employees importEmployeeReader,
	types importTypeReader,
	rule MenuRule,
	csvExporter *export.CSVExporter,
	logger *zap.Logger,
) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rule == nil {
		rule = WeekdayMenuRule{}
	}
	if csvExporter == nil {
		csvExporter = export.NewCSVExporter()
	}
	return &ImportService{
		records:   records,
		employees: employees,
		types:     types,
		rule:      rule,
		csv:       csvExporter,
		logger:    logger,
	}
}

// Import parses and applies a CSV upload. Admin only. Rows landing on the
// weekly holiday are skipped, existing active records for the same employee
// and date are updated in place, and everything else becomes a new record.
func (s *ImportService) Import(ctx context.Context, reader io.Reader, actor *models.JWTClaims) (*dto.ImportSummary, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admin can import lunch records")
	}

	rows, err := s.parse(reader)
	if err != nil {
		return nil, err
	}

	summary := &dto.ImportSummary{}
	var details []string
	addError := func(line int, format string, args ...interface{}) {
		summary.Errors++
		msg := fmt.Sprintf("Row %d: %s", line, fmt.Sprintf(format, args...))
		if len(details) < maxImportErrorDetails {
			details = append(details, msg)
		} else {
			summary.Truncated++
		}
	}

	// Data starts on line 2; line 1 is the header.
	for i, row := range rows {
		line := i + 2

		if row.EmployeeName == "" {
			addError(line, "employee name is required")
			continue
		}
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			addError(line, "invalid date %q, expected YYYY-MM-DD", row.Date)
			continue
		}
		if s.rule.IsHoliday(date) {
			summary.Skipped++
			continue
		}

		employee, err := s.employees.FindByName(ctx, row.EmployeeName)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				addError(line, "employee %q not found", row.EmployeeName)
			} else {
				addError(line, "failed to look up employee %q", row.EmployeeName)
				s.logger.Error("import employee lookup failed", zap.Int("line", line), zap.Error(err))
			}
			continue
		}

		typeName := row.LunchTypeName
		if typeName == "" {
			typeName = s.rule.TypeNameFor(date)
		}
		lunchType, err := s.types.FindByName(ctx, typeName)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				addError(line, "lunch type %q not found", typeName)
			} else {
				addError(line, "failed to look up lunch type %q", typeName)
				s.logger.Error("import lunch type lookup failed", zap.Int("line", line), zap.Error(err))
			}
			continue
		}

		if err := s.apply(ctx, employee, date, lunchType, normalizeImportState(row.State), row.Remarks); err != nil {
			addError(line, "failed to save record for %q: %v", row.EmployeeName, err)
			continue
		}
		summary.Imported++
	}

	if summary.Truncated > 0 {
		details = append(details, fmt.Sprintf("... and %d more errors", summary.Truncated))
	}
	summary.Details = details
	summary.Text = fmt.Sprintf("Imported %d records, %d errors, %d skipped (holiday)",
		summary.Imported, summary.Errors, summary.Skipped)

	s.logger.Info("lunch import finished",
		zap.Int("imported", summary.Imported),
		zap.Int("errors", summary.Errors),
		zap.Int("skipped", summary.Skipped))

	return summary, nil
}

// Template renders a sample CSV showing the expected columns.
func (s *ImportService) Template() ([]byte, error) {
	data := export.Dataset{
		Headers: importHeaders,
		Rows: []map[string]string{
			{
				"Employee Name": "Jane Doe",
				"Date":          "2026-01-05",
				"Lunch Type":    LunchTypeNonVeg,
				"State":         string(models.RecordStateConfirmed),
				"Remarks":       "",
			},
		},
	}
	out, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render import template")
	}
	return out, nil
}

func (s *ImportService) parse(reader io.Reader) ([]dto.ImportRow, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "uploaded file is empty or not valid CSV")
	}
	index, err := mapImportHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []dto.ImportRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "uploaded file contains malformed CSV")
		}
		rows = append(rows, dto.ImportRow{
			EmployeeName:  fieldAt(record, index["Employee Name"]),
			Date:          fieldAt(record, index["Date"]),
			LunchTypeName: fieldAt(record, index["Lunch Type"]),
			State:         fieldAt(record, index["State"]),
			Remarks:       fieldAt(record, index["Remarks"]),
		})
	}
	return rows, nil
}

func (s *ImportService) apply(ctx context.Context, employee *models.Employee, date time.Time, lunchType *models.LunchType, state models.RecordState, remarks string) error {
	existing, err := s.records.FindActive(ctx, employee.ID, date)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if existing != nil {
		existing.LunchTypeID = lunchType.ID
		existing.State = state
		existing.Note = optionalString(remarks)
		return s.records.Update(ctx, existing)
	}

	record := &models.LunchRecord{
		EmployeeID:  employee.ID,
		Date:        date,
		LunchTypeID: lunchType.ID,
		Note:        optionalString(remarks),
		State:       state,
	}
	if err := s.records.Create(ctx, record); err != nil {
		// A concurrent create between lookup and insert; treat as update.
		if errors.Is(err, repository.ErrActiveRecordExists) {
			return errors.New("record already exists for this date")
		}
		return err
	}
	return nil
}

// normalizeImportState coerces unknown state values to confirmed, matching
// how uploads from the HR spreadsheet are expected to behave.
func normalizeImportState(raw string) models.RecordState {
	state := models.RecordState(strings.ToLower(strings.TrimSpace(raw)))
	switch state {
	case models.RecordStateDraft, models.RecordStateConfirmed, models.RecordStateCancelled:
		return state
	default:
		return models.RecordStateConfirmed
	}
}

func mapImportHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Employee Name", "Date"} {
		if _, ok := index[required]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("missing required column %q", required))
		}
	}
	for _, optional := range []string{"Lunch Type", "State", "Remarks"} {
		if _, ok := index[optional]; !ok {
			index[optional] = -1
		}
	}
	return index, nil
}

func fieldAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
