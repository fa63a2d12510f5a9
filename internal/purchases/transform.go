package purchase

import (
	"github.com/shopspring/decimal"

	"github.com/petrolube/lubedash-backend/pkg/db/models"
	"github.com/petrolube/lubedash-backend/pkg/enums"
)

const orderDateLayout = "2006-01-02"

// PurchaseProduct is one product line of the flattened list view.
type PurchaseProduct struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// PurchaseListItem is the flattened row the dashboard order table consumes.
// Dates are plain YYYY-MM-DD strings; deliveryDate only appears once the
// order has actually been delivered.
type PurchaseListItem struct {
	ID           string              `json:"id"`
	OrderNumber  string              `json:"orderNumber"`
	ClientName   string              `json:"clientName"`
	Products     []PurchaseProduct   `json:"products"`
	Total        decimal.Decimal     `json:"total"`
	Status       enums.DerivedStatus `json:"status"`
	OrderDate    string              `json:"orderDate"`
	DeliveryDate string              `json:"deliveryDate,omitempty"`
}

// TransformPurchase flattens a stored purchase into the list view. clientName
// is the resolved party name; when the caller could not resolve one, the raw
// customer username is used instead.
func TransformPurchase(p *models.Purchase, clientName string) PurchaseListItem {
	if clientName == "" {
		clientName = p.CustomerUsername
	}

	products := make([]PurchaseProduct, 0, len(p.Items))
	for _, item := range p.Items {
		products = append(products, PurchaseProduct{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		})
	}

	item := PurchaseListItem{
		ID:          p.ID.String(),
		OrderNumber: p.OrderNumber,
		ClientName:  clientName,
		Products:    products,
		Total:       p.Total,
		Status:      DeriveStatus(p.OrderStatus, p.PaymentStatus, p.ShippedAt, p.DeliveredAt),
	}
	if !p.CreatedAt.IsZero() {
		item.OrderDate = p.CreatedAt.UTC().Format(orderDateLayout)
	}
	if p.DeliveredAt != nil && !p.DeliveredAt.IsZero() {
		item.DeliveryDate = p.DeliveredAt.UTC().Format(orderDateLayout)
	}
	return item
}
