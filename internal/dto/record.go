package dto

// CreateLunchRecordRequest creates a self-service lunch record. Date is
// optional; when omitted the next working day is used. EmployeeID and
// LunchTypeID are honoured only for admin-level callers.
type CreateLunchRecordRequest struct {
	EmployeeID  string `json:"employee_id" validate:"omitempty"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	LunchTypeID string `json:"lunch_type_id" validate:"omitempty"`
	Note        string `json:"note"`
}

// AdminFillRequest creates a confirmed record on behalf of an employee.
type AdminFillRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	LunchTypeID string `json:"lunch_type_id" validate:"omitempty"`
	Note        string `json:"note"`
}

// ModifyLunchRecordRequest carries a partial record edit. Nil fields are
// left untouched. Employee and date changes are admin-only.
type ModifyLunchRecordRequest struct {
	EmployeeID  *string `json:"employee_id"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	LunchTypeID *string `json:"lunch_type_id"`
	Note        *string `json:"note"`
	State       *string `json:"state" validate:"omitempty,oneof=draft requested confirmed cancelled"`
}

// ListLunchRecordsQuery filters record listings.
type ListLunchRecordsQuery struct {
	EmployeeID string `form:"employeeId"`
	DateFrom   string `form:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	State      string `form:"state" validate:"omitempty,oneof=draft requested confirmed cancelled"`
	Page       int    `form:"page"`
	PageSize   int    `form:"limit"`
}

// LunchRecordResponse is the API projection of a record.
type LunchRecordResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	Date           string  `json:"date"`
	Day            string  `json:"day"`
	LunchTypeID    string  `json:"lunch_type_id"`
	LunchTypeName  string  `json:"lunch_type_name,omitempty"`
	Cost           float64 `json:"cost"`
	Note           string  `json:"note,omitempty"`
	State          string  `json:"state"`
	IsAdminRequest bool    `json:"is_admin_request"`
}
