package dto

// ReportQuery filters the lunch report projection. Admins see confirmed
// records only; other callers see their own records regardless of filter.
type ReportQuery struct {
	DateFrom   string `form:"dateFrom" validate:"required,datetime=2006-01-02"`
	DateTo     string `form:"dateTo" validate:"required,datetime=2006-01-02"`
	EmployeeID string `form:"employeeId"`
	Format     string `form:"format" validate:"omitempty,oneof=json csv pdf"`
}

// ReportRow is one line of the report projection.
type ReportRow struct {
	EmployeeName  string  `json:"employee_name"`
	Date          string  `json:"date"`
	Day           string  `json:"day"`
	LunchTypeName string  `json:"lunch_type_name"`
	Cost          float64 `json:"cost"`
	State         string  `json:"state"`
	Note          string  `json:"note,omitempty"`
}

// ReportResult bundles rows with totals.
type ReportResult struct {
	Rows      []ReportRow `json:"rows"`
	TotalCost float64     `json:"total_cost"`
	Count     int         `json:"count"`
}
