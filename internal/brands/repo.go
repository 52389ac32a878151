package brands

import (
	"context"

	"github.com/adamkadry/backoffice-api/pkg/db/models"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var listOptions = listing.Options{
	SortColumns:   []string{"id", "name", "created_at"},
	SearchColumns: []string{"name"},
	DefaultSort:   "created_at DESC",
}

// Repository is the persistence surface for product brands.
type Repository interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasProducts(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, params listing.Params) (*listing.Page, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&brand).Error
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *repository) Create(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Brand{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Brand{}).Error
}

func (r *repository) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("brand_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) List(ctx context.Context, params listing.Params) (*listing.Page, error) {
	params = listing.Normalize(params)

	base := func() *gorm.DB {
		return listing.ApplySearch(
			r.db.WithContext(ctx).Model(&models.Brand{}),
			params,
			listOptions,
		)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, err
	}

	q, err := listing.ApplyOrdering(base(), params, listOptions)
	if err != nil {
		return nil, err
	}

	var rows []models.Brand
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return listing.NewPage(rows, total, params), nil
}
