package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput carries a new catalog entry.
type CreateInput struct {
	Name       string
	Price      decimal.Decimal
	CategoryID uuid.UUID
	BrandID    uuid.UUID
	ActorID    uuid.UUID
}

// UpdateInput carries a full replacement of a product's editable fields.
// Price changes take effect on the next sale write; stored sales are not
// repriced retroactively.
type UpdateInput struct {
	ProductID  uuid.UUID
	Name       string
	Price      decimal.Decimal
	CategoryID uuid.UUID
	BrandID    uuid.UUID
}
