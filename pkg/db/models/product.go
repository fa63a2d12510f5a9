package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petrolube/lubedash-backend/pkg/enums"
)

// Product is a lubricant catalog entry. Name uniqueness is case-insensitive,
// enforced by a functional index on lower(name).
type Product struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string             `gorm:"column:name;not null"`
	Category    string             `gorm:"column:category;not null"`
	Viscosity   string             `gorm:"column:viscosity;not null;default:''"`
	Price       decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	Stock       int                `gorm:"column:stock;not null;default:0"`
	Description string             `gorm:"column:description;not null;default:''"`
	Image       string             `gorm:"column:image;not null;default:''"`
	Status      enums.RecordStatus `gorm:"column:status;type:text;not null;default:'active'"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
