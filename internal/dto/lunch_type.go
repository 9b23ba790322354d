package dto

// CreateLunchTypeRequest adds a lunch category.
type CreateLunchTypeRequest struct {
	Name string  `json:"name" validate:"required"`
	Cost float64 `json:"cost" validate:"required,gt=0"`
	Note string  `json:"note"`
}

// UpdateLunchTypeRequest edits an existing category.
type UpdateLunchTypeRequest struct {
	Name string  `json:"name" validate:"required"`
	Cost float64 `json:"cost" validate:"required,gt=0"`
	Note string  `json:"note"`
}
