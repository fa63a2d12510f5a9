package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petrolube/lubedash-backend/pkg/db/models"
	"github.com/petrolube/lubedash-backend/pkg/enums"
	"github.com/petrolube/lubedash-backend/pkg/types"
)

// ItemInput is one product line of an incoming purchase document.
type ItemInput struct {
	ProductID   *uuid.UUID      `json:"productId,omitempty"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Viscosity   string          `json:"viscosity,omitempty"`
	Image       string          `json:"image,omitempty"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// Pricing carries the monetary breakdown of a purchase. Total is accepted as
// sent; the backend does not recompute subtotal + tax.
type Pricing struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	Total     decimal.Decimal `json:"total"`
}

// PaymentEntry is one settlement against a purchase.
type PaymentEntry struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    types.FlexTime  `json:"paidAt"`
}

// PaymentDetails tracks how much of a purchase has been settled so far.
type PaymentDetails struct {
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	LastPaymentDate  types.FlexTime  `json:"lastPaymentDate"`
	PaymentHistory   []PaymentEntry  `json:"paymentHistory,omitempty"`
}

// TimestampsDTO is the lifecycle stamp bundle of a purchase document. All
// fields decode through FlexTime so imported records can carry extended-JSON
// wrappers, ISO strings, or epoch millis interchangeably.
type TimestampsDTO struct {
	CreatedAt   types.FlexTime `json:"createdAt"`
	UpdatedAt   types.FlexTime `json:"updatedAt"`
	PaidAt      types.FlexTime `json:"paidAt"`
	SentAt      types.FlexTime `json:"sentAt"`
	ViewedAt    types.FlexTime `json:"viewedAt"`
	ShippedAt   types.FlexTime `json:"shippedAt"`
	DeliveredAt types.FlexTime `json:"deliveredAt"`
}

// InvoiceDetails carries the invoice state attached to a purchase.
type InvoiceDetails struct {
	InvoiceGenerated bool                `json:"invoiceGenerated"`
	InvoiceStatus    enums.InvoiceStatus `json:"invoiceStatus"`
}

// Metadata is the provenance block of a purchase document.
type Metadata struct {
	Source      string   `json:"source,omitempty"`
	GeneratedBy string   `json:"generatedBy,omitempty"`
	Version     int      `json:"version,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// PurchaseInput is the full purchase document accepted on create.
type PurchaseInput struct {
	OrderNumber      string              `json:"orderNumber" validate:"required"`
	InvoiceNumber    string              `json:"invoiceNumber" validate:"required"`
	CustomerUsername string              `json:"customerUsername" validate:"required"`
	Items            []ItemInput         `json:"items" validate:"dive"`
	Pricing          Pricing             `json:"pricing"`
	OrderStatus      enums.OrderStatus   `json:"orderStatus,omitempty"`
	PaymentStatus    enums.PaymentStatus `json:"paymentStatus,omitempty"`
	PaymentMethod    string              `json:"paymentMethod,omitempty"`
	PaymentDetails   PaymentDetails      `json:"paymentDetails"`
	DueDate          types.FlexTime      `json:"dueDate"`
	Notes            string              `json:"notes,omitempty"`
	Timestamps       TimestampsDTO       `json:"timestamps"`
	InvoiceDetails   InvoiceDetails      `json:"invoiceDetails"`
	Metadata         Metadata            `json:"metadata"`
}

// UpdateInput is a partial purchase update. Nil fields are left untouched;
// provided groups replace the stored ones wholesale, matching how the
// dashboard sends edits. Lifecycle stamps merge individually: only the
// non-zero entries of Timestamps are applied.
type UpdateInput struct {
	CustomerUsername *string              `json:"customerUsername,omitempty"`
	Items            []ItemInput          `json:"items,omitempty" validate:"omitempty,dive"`
	Pricing          *Pricing             `json:"pricing,omitempty"`
	OrderStatus      *enums.OrderStatus   `json:"orderStatus,omitempty"`
	PaymentStatus    *enums.PaymentStatus `json:"paymentStatus,omitempty"`
	PaymentMethod    *string              `json:"paymentMethod,omitempty"`
	PaymentDetails   *PaymentDetails      `json:"paymentDetails,omitempty"`
	DueDate          *types.FlexTime      `json:"dueDate,omitempty"`
	Notes            *string              `json:"notes,omitempty"`
	Timestamps       *TimestampsDTO       `json:"timestamps,omitempty"`
	InvoiceDetails   *InvoiceDetails      `json:"invoiceDetails,omitempty"`
	Metadata         *Metadata            `json:"metadata,omitempty"`
}

// PurchaseDTO is the full invoice view returned by single-purchase reads.
type PurchaseDTO struct {
	ID               uuid.UUID           `json:"id"`
	OrderNumber      string              `json:"orderNumber"`
	InvoiceNumber    string              `json:"invoiceNumber"`
	CustomerUsername string              `json:"customerUsername"`
	Items            []ItemInput         `json:"items"`
	Pricing          Pricing             `json:"pricing"`
	OrderStatus      enums.OrderStatus   `json:"orderStatus"`
	PaymentStatus    enums.PaymentStatus `json:"paymentStatus"`
	PaymentMethod    string              `json:"paymentMethod,omitempty"`
	PaymentDetails   PaymentDetails      `json:"paymentDetails"`
	DueDate          types.FlexTime      `json:"dueDate"`
	Notes            string              `json:"notes,omitempty"`
	Status           enums.DerivedStatus `json:"status"`
	Timestamps       TimestampsDTO       `json:"timestamps"`
	InvoiceDetails   InvoiceDetails      `json:"invoiceDetails"`
	Metadata         Metadata            `json:"metadata"`
}

// PurchaseList is the paginated list response.
type PurchaseList struct {
	Purchases  []PurchaseListItem `json:"purchases"`
	Pagination types.Pagination   `json:"pagination"`
}

// ToModel builds the persisted purchase from an incoming document. createdAt
// and updatedAt are stamped with now regardless of what the document carries;
// the other lifecycle stamps are taken from the document.
func (in PurchaseInput) ToModel(now time.Time) *models.Purchase {
	orderStatus := in.OrderStatus
	if orderStatus == "" {
		orderStatus = enums.OrderStatusPending
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = enums.PaymentStatusUnpaid
	}
	invoiceStatus := in.InvoiceDetails.InvoiceStatus
	if invoiceStatus == "" {
		invoiceStatus = enums.InvoiceStatusDraft
	}
	version := in.Metadata.Version
	if version == 0 {
		version = 1
	}

	p := &models.Purchase{
		ID:               uuid.New(),
		OrderNumber:      in.OrderNumber,
		InvoiceNumber:    in.InvoiceNumber,
		CustomerUsername: in.CustomerUsername,
		Items:            itemModels(uuid.Nil, in.Items),
		Subtotal:         in.Pricing.Subtotal,
		TaxRate:          in.Pricing.TaxRate,
		TaxAmount:        in.Pricing.TaxAmount,
		Total:            in.Pricing.Total,
		OrderStatus:      orderStatus,
		PaymentStatus:    paymentStatus,
		PaymentMethod:    in.PaymentMethod,
		PaidAmount:       in.PaymentDetails.PaidAmount,
		RemainingBalance: in.PaymentDetails.RemainingBalance,
		LastPaymentDate:  in.PaymentDetails.LastPaymentDate.TimePtr(),
		PaymentHistory:   paymentRecords(in.PaymentDetails.PaymentHistory),
		DueDate:          in.DueDate.TimePtr(),
		Notes:            in.Notes,
		PaidAt:           in.Timestamps.PaidAt.TimePtr(),
		SentAt:           in.Timestamps.SentAt.TimePtr(),
		ViewedAt:         in.Timestamps.ViewedAt.TimePtr(),
		ShippedAt:        in.Timestamps.ShippedAt.TimePtr(),
		DeliveredAt:      in.Timestamps.DeliveredAt.TimePtr(),
		InvoiceGenerated: in.InvoiceDetails.InvoiceGenerated,
		InvoiceStatus:    invoiceStatus,
		Source:           in.Metadata.Source,
		GeneratedBy:      in.Metadata.GeneratedBy,
		SchemaVersion:    version,
		Tags:             in.Metadata.Tags,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for i := range p.Items {
		p.Items[i].PurchaseID = p.ID
	}
	return p
}

// Apply mutates the stored purchase with the provided fields. It returns
// whether the item lines were replaced so the repository knows to rewrite
// the child rows.
func (in UpdateInput) Apply(p *models.Purchase) bool {
	if in.CustomerUsername != nil {
		p.CustomerUsername = *in.CustomerUsername
	}
	if in.Pricing != nil {
		p.Subtotal = in.Pricing.Subtotal
		p.TaxRate = in.Pricing.TaxRate
		p.TaxAmount = in.Pricing.TaxAmount
		p.Total = in.Pricing.Total
	}
	if in.OrderStatus != nil {
		p.OrderStatus = *in.OrderStatus
	}
	if in.PaymentStatus != nil {
		p.PaymentStatus = *in.PaymentStatus
	}
	if in.PaymentMethod != nil {
		p.PaymentMethod = *in.PaymentMethod
	}
	if in.PaymentDetails != nil {
		p.PaidAmount = in.PaymentDetails.PaidAmount
		p.RemainingBalance = in.PaymentDetails.RemainingBalance
		p.LastPaymentDate = in.PaymentDetails.LastPaymentDate.TimePtr()
		p.PaymentHistory = paymentRecords(in.PaymentDetails.PaymentHistory)
	}
	if in.DueDate != nil {
		p.DueDate = in.DueDate.TimePtr()
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if in.Timestamps != nil {
		if t := in.Timestamps.PaidAt.TimePtr(); t != nil {
			p.PaidAt = t
		}
		if t := in.Timestamps.SentAt.TimePtr(); t != nil {
			p.SentAt = t
		}
		if t := in.Timestamps.ViewedAt.TimePtr(); t != nil {
			p.ViewedAt = t
		}
		if t := in.Timestamps.ShippedAt.TimePtr(); t != nil {
			p.ShippedAt = t
		}
		if t := in.Timestamps.DeliveredAt.TimePtr(); t != nil {
			p.DeliveredAt = t
		}
	}
	if in.InvoiceDetails != nil {
		p.InvoiceGenerated = in.InvoiceDetails.InvoiceGenerated
		p.InvoiceStatus = in.InvoiceDetails.InvoiceStatus
	}
	if in.Metadata != nil {
		p.Source = in.Metadata.Source
		p.GeneratedBy = in.Metadata.GeneratedBy
		if in.Metadata.Version != 0 {
			p.SchemaVersion = in.Metadata.Version
		}
		p.Tags = in.Metadata.Tags
	}

	if in.Items == nil {
		return false
	}
	p.Items = itemModels(p.ID, in.Items)
	return true
}

// FromModel builds the full invoice view.
func FromModel(p *models.Purchase) *PurchaseDTO {
	if p == nil {
		return nil
	}

	items := make([]ItemInput, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, ItemInput{
			ProductID:   item.ProductID,
			Name:        item.ProductName,
			Description: item.ProductDescription,
			Category:    item.ProductCategory,
			Viscosity:   item.ProductViscosity,
			Image:       item.ProductImage,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	history := make([]PaymentEntry, 0, len(p.PaymentHistory))
	for _, record := range p.PaymentHistory {
		history = append(history, PaymentEntry{
			Amount:    record.Amount,
			Method:    record.Method,
			Reference: record.Reference,
			PaidAt:    types.NewFlexTime(record.PaidAt),
		})
	}

	return &PurchaseDTO{
		ID:               p.ID,
		OrderNumber:      p.OrderNumber,
		InvoiceNumber:    p.InvoiceNumber,
		CustomerUsername: p.CustomerUsername,
		Items:            items,
		Pricing: Pricing{
			Subtotal:  p.Subtotal,
			TaxRate:   p.TaxRate,
			TaxAmount: p.TaxAmount,
			Total:     p.Total,
		},
		OrderStatus:   p.OrderStatus,
		PaymentStatus: p.PaymentStatus,
		PaymentMethod: p.PaymentMethod,
		PaymentDetails: PaymentDetails{
			PaidAmount:       p.PaidAmount,
			RemainingBalance: p.RemainingBalance,
			LastPaymentDate:  flexFromPtr(p.LastPaymentDate),
			PaymentHistory:   history,
		},
		DueDate: flexFromPtr(p.DueDate),
		Notes:   p.Notes,
		Status:  DeriveStatus(p.OrderStatus, p.PaymentStatus, p.ShippedAt, p.DeliveredAt),
		Timestamps: TimestampsDTO{
			CreatedAt:   types.NewFlexTime(p.CreatedAt),
			UpdatedAt:   types.NewFlexTime(p.UpdatedAt),
			PaidAt:      flexFromPtr(p.PaidAt),
			SentAt:      flexFromPtr(p.SentAt),
			ViewedAt:    flexFromPtr(p.ViewedAt),
			ShippedAt:   flexFromPtr(p.ShippedAt),
			DeliveredAt: flexFromPtr(p.DeliveredAt),
		},
		InvoiceDetails: InvoiceDetails{
			InvoiceGenerated: p.InvoiceGenerated,
			InvoiceStatus:    p.InvoiceStatus,
		},
		Metadata: Metadata{
			Source:      p.Source,
			GeneratedBy: p.GeneratedBy,
			Version:     p.SchemaVersion,
			Tags:        p.Tags,
		},
	}
}

func itemModels(purchaseID uuid.UUID, inputs []ItemInput) []models.PurchaseItem {
	items := make([]models.PurchaseItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, models.PurchaseItem{
			ID:                 uuid.New(),
			PurchaseID:         purchaseID,
			ProductID:          in.ProductID,
			ProductName:        in.Name,
			ProductDescription: in.Description,
			ProductCategory:    in.Category,
			ProductViscosity:   in.Viscosity,
			ProductImage:       in.Image,
			Quantity:           in.Quantity,
			UnitPrice:          in.UnitPrice,
			TotalPrice:         in.TotalPrice,
		})
	}
	return items
}

func paymentRecords(entries []PaymentEntry) []models.PaymentRecord {
	if len(entries) == 0 {
		return nil
	}
	records := make([]models.PaymentRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, models.PaymentRecord{
			Amount:    entry.Amount,
			Method:    entry.Method,
			Reference: entry.Reference,
			PaidAt:    entry.PaidAt.Time,
		})
	}
	return records
}

func flexFromPtr(t *time.Time) types.FlexTime {
	if t == nil {
		return types.FlexTime{}
	}
	return types.NewFlexTime(*t)
}
