package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/innovax/lunch-api/internal/dto"
	"github.com/innovax/lunch-api/internal/models"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
)

type typeRepository interface {
	List(ctx context.Context) ([]models.LunchType, error)
	FindByID(ctx context.Context, id string) (*models.LunchType, error)
	FindByName(ctx context.Context, name string) (*models.LunchType, error)
	Create(ctx context.Context, t *models.LunchType) error
	Update(ctx context.Context, t *models.LunchType) error
}

// TypeService manages the lunch category catalogue.
type TypeService struct {
	repo      typeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTypeService constructs a TypeService.
func NewTypeService(repo typeRepository, validate *validator.Validate, logger *zap.Logger) *TypeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TypeService{repo: repo, validator: validate, logger: logger}
}

// List returns all lunch types.
func (s *TypeService) List(ctx context.Context) ([]models.LunchType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lunch types")
	}
	return types, nil
}

// Get fetches one lunch type.
func (s *TypeService) Get(ctx context.Context, id string) (*models.LunchType, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lunch type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch lunch type")
	}
	return t, nil
}

// Create adds a lunch category. Names are unique case-insensitively.
func (s *TypeService) Create(ctx context.Context, req dto.CreateLunchTypeRequest) (*models.LunchType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lunch type payload")
	}

	if existing, err := s.repo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a lunch type with this name already exists")
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check lunch type name")
	}

	t := &models.LunchType{
		Name: req.Name,
		Cost: req.Cost,
		Note: optionalString(req.Note),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lunch type")
	}
	return t, nil
}

// Update edits an existing category.
func (s *TypeService) Update(ctx context.Context, id string, req dto.UpdateLunchTypeRequest) (*models.LunchType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lunch type payload")
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByName(ctx, req.Name); err == nil && existing != nil && existing.ID != id {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a lunch type with this name already exists")
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check lunch type name")
	}

	t.Name = req.Name
	t.Cost = req.Cost
	t.Note = optionalString(req.Note)
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update lunch type")
	}
	return t, nil
}
