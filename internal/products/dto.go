package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petrolube/lubedash-backend/pkg/db/models"
	"github.com/petrolube/lubedash-backend/pkg/enums"
)

// ProductInput is the request payload for creating or replacing a product.
type ProductInput struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Viscosity   string          `json:"viscosity"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

// ProductDTO is the transport shape of a catalog entry.
type ProductDTO struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Viscosity   string             `json:"viscosity"`
	Price       decimal.Decimal    `json:"price"`
	Stock       int                `json:"stock"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	Status      enums.RecordStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ListFilter narrows the product listing.
type ListFilter struct {
	Category string
	Status   string
	Search   string
}

// CategorySummary aggregates catalog stats for one category.
type CategorySummary struct {
	Category   string          `json:"category"`
	Count      int64           `json:"count"`
	TotalStock int64           `json:"totalStock"`
	AvgPrice   decimal.Decimal `json:"avgPrice"`
}

func FromModel(m *models.Product) *ProductDTO {
	if m == nil {
		return nil
	}
	return &ProductDTO{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Viscosity:   m.Viscosity,
		Price:       m.Price,
		Stock:       m.Stock,
		Description: m.Description,
		Image:       m.Image,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
