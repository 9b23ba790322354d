package dto

// ImportRow is one parsed line of a bulk lunch record upload:
// Employee Name, Date (YYYY-MM-DD), Lunch Type, State, Remarks.
type ImportRow struct {
	EmployeeName  string
	Date          string
	LunchTypeName string
	State         string
	Remarks       string
}

// ImportSummary aggregates the outcome of a bulk upload. Errors holds at
// most the first 20 row-level messages; Truncated counts the rest.
type ImportSummary struct {
	Imported  int      `json:"imported"`
	Errors    int      `json:"errors"`
	Skipped   int      `json:"skipped"`
	Details   []string `json:"details,omitempty"`
	Truncated int      `json:"truncated,omitempty"`
	Text      string   `json:"text"`
}
