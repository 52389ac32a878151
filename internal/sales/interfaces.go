package sales

import (
	"context"

	"github.com/adamkadry/backoffice-api/pkg/db/models"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository is the persistence surface the sale aggregator depends on. The
// explicit existence queries matter: validation must never rely on loading a
// row and dereferencing the result.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindSale(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	FindSaleDetail(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	CreateSale(ctx context.Context, sale *models.Sale) error
	UpdateSale(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteSale(ctx context.Context, id uuid.UUID) error

	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
	ProductExists(ctx context.Context, id uuid.UUID) (bool, error)
	ProductPrice(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)

	LineExists(ctx context.Context, saleID, productID uuid.UUID) (bool, error)
	CreateLine(ctx context.Context, line *models.SaleLine) error
	DeleteLinesNotIn(ctx context.Context, saleID uuid.UUID, productIDs []uuid.UUID) error
	DeleteLines(ctx context.Context, saleID uuid.UUID) error
	ListLines(ctx context.Context, saleID uuid.UUID) ([]models.SaleLine, error)

	List(ctx context.Context, params listing.Params) (*listing.Page, error)
}
