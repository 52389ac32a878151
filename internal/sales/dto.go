package sales

import (
	"github.com/adamkadry/backoffice-api/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineInput is one submitted (product, quantity) pair.
type LineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateInput carries everything needed to register a sale. ActorID is passed
// explicitly; there is no ambient session.
type CreateInput struct {
	CustomerID uuid.UUID
	Method     enums.PaymentMethod
	Discount   decimal.Decimal
	Lines      []LineInput
	ActorID    uuid.UUID
}

// UpdateInput carries a full resubmission of a sale's fields and line set.
type UpdateInput struct {
	SaleID     uuid.UUID
	CustomerID uuid.UUID
	Method     enums.PaymentMethod
	Discount   decimal.Decimal
	Lines      []LineInput
}
