package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItem is the snapshot of one product line within a purchase. Product
// attributes are copied at order time so later catalog edits never rewrite
// history.
type PurchaseItem struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PurchaseID         uuid.UUID       `gorm:"column:purchase_id;type:uuid;not null"`
	ProductID          *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	ProductName        string          `gorm:"column:product_name;not null"`
	ProductDescription string          `gorm:"column:product_description;not null;default:''"`
	ProductCategory    string          `gorm:"column:product_category;not null;default:''"`
	ProductViscosity   string          `gorm:"column:product_viscosity;not null;default:''"`
	ProductImage       string          `gorm:"column:product_image;not null;default:''"`
	Quantity           int             `gorm:"column:quantity;not null"`
	UnitPrice          decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	TotalPrice         decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
