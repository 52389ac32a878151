package brands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adamkadry/backoffice-api/pkg/db"
	"github.com/adamkadry/backoffice-api/pkg/db/models"
	pkgerrors "github.com/adamkadry/backoffice-api/pkg/errors"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInput carries a new brand.
type CreateInput struct {
	Name        string
	Image       *string
	Description *string
	ActorID     uuid.UUID
}

// UpdateInput carries a brand's editable fields.
type UpdateInput struct {
	BrandID     uuid.UUID
	Name        string
	Image       *string
	Description *string
}

// Service manages product brands.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Brand, error)
	Update(ctx context.Context, input UpdateInput) (*models.Brand, error)
	Delete(ctx context.Context, brandID uuid.UUID) error
	Get(ctx context.Context, brandID uuid.UUID) (*models.Brand, error)
	List(ctx context.Context, params listing.Params) (*listing.Page, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("brands repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Brand, error) {
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand name required")
	}

	brand := &models.Brand{
		Name:        strings.TrimSpace(input.Name),
		Image:       input.Image,
		Description: input.Description,
		CreatedBy:   input.ActorID,
	}
	if err := s.repo.Create(ctx, brand); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "brand name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create brand")
	}
	return brand, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Brand, error) {
	if input.BrandID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand name required")
	}

	brand, err := s.repo.Find(ctx, input.BrandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}

	updates := map[string]any{
		"name":        strings.TrimSpace(input.Name),
		"image":       input.Image,
		"description": input.Description,
	}
	if err := s.repo.Update(ctx, brand.ID, updates); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "brand name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand")
	}

	brand.Name = strings.TrimSpace(input.Name)
	brand.Image = input.Image
	brand.Description = input.Description
	return brand, nil
}

func (s *service) Delete(ctx context.Context, brandID uuid.UUID) error {
	if brandID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}

	if _, err := s.repo.Find(ctx, brandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}

	hasProducts, err := s.repo.HasProducts(ctx, brandID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check brand products")
	}
	if hasProducts {
		return pkgerrors.New(pkgerrors.CodeConflict, "brand has products")
	}

	if err := s.repo.Delete(ctx, brandID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete brand")
	}
	return nil
}

func (s *service) Get(ctx context.Context, brandID uuid.UUID) (*models.Brand, error) {
	brand, err := s.repo.Find(ctx, brandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	return brand, nil
}

func (s *service) List(ctx context.Context, params listing.Params) (*listing.Page, error) {
	page, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return page, nil
}
