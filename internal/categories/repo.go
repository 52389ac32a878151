package categories

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

// Repository is the persistence surface for product categories.
type Repository interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
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

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

func (r *repository) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id = ?", id).
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
			r.db.WithContext(ctx).Model(&models.Category{}),
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

	var rows []models.Category
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return listing.NewPage(rows, total, params), nil
}
