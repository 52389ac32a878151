package customers

import (
	"context"

	"github.com/adamkadry/backoffice-api/pkg/db/models"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the persistence surface for customer records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Find(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasSales(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, params listing.Params) (*listing.Page, error)
}
