package products

import (
	"context"

	"github.com/adamkadry/backoffice-api/pkg/db/models"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var listOptions = listing.Options{
	SortColumns:   []string{"id", "name", "price", "created_at"},
	SearchColumns: []string{"name"},
	DefaultSort:   "created_at DESC",
}

// Repository is the persistence surface for catalog products.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Find(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
	BrandExists(ctx context.Context, id uuid.UUID) (bool, error)
	HasSaleLines(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, params listing.Params) (*listing.Page, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

func (r *repository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.Category{}, id)
}

func (r *repository) BrandExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.Brand{}, id)
}

func (r *repository) HasSaleLines(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SaleLine{}).
		Where("product_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) exists(ctx context.Context, model any, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
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
			r.db.WithContext(ctx).Model(&models.Product{}),
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

	var rows []models.Product
	err = q.Preload("Category").
		Preload("Brand").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return listing.NewPage(rows, total, params), nil
}
