package sales

import (
	"context"

	"github.com/adamkadry/backoffice-api/pkg/db/models"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var listOptions = listing.Options{
	SortColumns: []string{"id", "method", "amount", "discount", "created_at"},
	DefaultSort: "created_at DESC",
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindSale(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) FindSaleDetail(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Owner").
		Preload("Lines").
		Preload("Lines.Product").
		Where("id = ?", id).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) CreateSale(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *repository) UpdateSale(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteSale(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Sale{}).Error
}

func (r *repository) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ProductExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ProductPrice(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Select("price").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return decimal.Zero, err
	}
	return product.Price, nil
}

func (r *repository) LineExists(ctx context.Context, saleID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SaleLine{}).
		Where("sale_id = ? AND product_id = ?", saleID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateLine(ctx context.Context, line *models.SaleLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *repository) DeleteLinesNotIn(ctx context.Context, saleID uuid.UUID, productIDs []uuid.UUID) error {
	q := r.db.WithContext(ctx).Where("sale_id = ?", saleID)
	if len(productIDs) > 0 {
		q = q.Where("product_id NOT IN ?", productIDs)
	}
	return q.Delete(&models.SaleLine{}).Error
}

func (r *repository) DeleteLines(ctx context.Context, saleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Delete(&models.SaleLine{}).Error
}

func (r *repository) ListLines(ctx context.Context, saleID uuid.UUID) ([]models.SaleLine, error) {
	var lines []models.SaleLine
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) List(ctx context.Context, params listing.Params) (*listing.Page, error) {
	params = listing.Normalize(params)

	base := func() *gorm.DB {
		return listing.ApplySearch(
			r.db.WithContext(ctx).Model(&models.Sale{}),
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

	var sales []models.Sale
	err = q.Preload("Customer").
		Preload("Owner").
		Preload("Lines").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return listing.NewPage(sales, total, params), nil
}
