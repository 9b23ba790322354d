package dto

// UpdateReminderConfigRequest edits the scheduler singleton. EmailTime is
// an hour-of-day float; dispatch is permitted for one hour from it.
type UpdateReminderConfigRequest struct {
	EmailTime float64 `json:"email_time" validate:"min=0,lt=24"`
	IsActive  bool    `json:"is_active"`
}

// ReminderConfigResponse is the API projection of the scheduler config.
type ReminderConfigResponse struct {
	Name         string  `json:"name"`
	EmailTime    float64 `json:"email_time"`
	IsActive     bool    `json:"is_active"`
	LastSentDate string  `json:"last_sent_date,omitempty"`
}

// DispatchResult summarises one reminder pass.
type DispatchResult struct {
	Attempted int    `json:"attempted"`
	Sent      int    `json:"sent"`
	Failed    int    `json:"failed"`
	Skipped   bool   `json:"skipped"`
	Reason    string `json:"reason,omitempty"`
}
