package customers

import (
	"context"

	"github.com/adamkadry/backoffice-api/pkg/db/models"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var listOptions = listing.Options{
	SortColumns:   []string{"id", "first_name", "last_name", "phone", "email", "created_at"},
	SearchColumns: []string{"first_name", "last_name", "phone", "email"},
	DefaultSort:   "created_at DESC",
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

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{}).Error
}

func (r *repository) HasSales(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("customer_id = ?", id).
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
			r.db.WithContext(ctx).Model(&models.Customer{}),
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

	var rows []models.Customer
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return listing.NewPage(rows, total, params), nil
}
