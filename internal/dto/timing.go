package dto

// UpsertLunchTimingRequest replaces the singleton confirmation window.
// Hours are floats in [0,24); end must not precede start (no midnight
// wraparound support).
type UpsertLunchTimingRequest struct {
	StartTime float64 `json:"start_time" validate:"min=0,lt=24"`
	EndTime   float64 `json:"end_time" validate:"min=0,lt=24"`
	Note      string  `json:"note"`
}

// LunchTimingResponse is the API projection of the window, with the hour
// floats also formatted as HH:MM for display.
type LunchTimingResponse struct {
	StartTime      float64 `json:"start_time"`
	EndTime        float64 `json:"end_time"`
	StartFormatted string  `json:"start_formatted"`
	EndFormatted   string  `json:"end_formatted"`
	Note           string  `json:"note,omitempty"`
}
