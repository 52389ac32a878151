package models

import (
	"time"

	"github.com/adamkadry/backoffice-api/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale links one customer to a set of purchased products. Amount is derived:
// it always equals the sum of live product price times quantity over the line
// set submitted at the moment of last write.
type Sale struct {
	ID         uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Method     enums.PaymentMethod `gorm:"column:method;not null" json:"method"`
	Amount     decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Discount   decimal.Decimal     `gorm:"column:discount;type:numeric(12,2);not null;default:0" json:"discount"`
	CustomerID uuid.UUID           `gorm:"column:customer_id;type:uuid;not null" json:"customer_id"`
	Customer   *Customer           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedBy  uuid.UUID           `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	Owner      *User               `gorm:"foreignKey:CreatedBy" json:"owner,omitempty"`
	Lines      []SaleLine          `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
