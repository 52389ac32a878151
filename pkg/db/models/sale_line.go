package models

import (
	"time"

	"github.com/google/uuid"
)

// SaleLine is one (product, quantity) entry within a sale. At most one line
// exists per (sale_id, product_id) pair.
type SaleLine struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SaleID    uuid.UUID `gorm:"column:sale_id;type:uuid;not null;uniqueIndex:idx_sale_lines_sale_product" json:"sale_id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_sale_lines_sale_product" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
