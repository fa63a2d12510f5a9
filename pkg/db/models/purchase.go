package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/petrolube/lubedash-backend/pkg/enums"
)

// Purchase is the persisted order/invoice document. A purchase carries two
// independent identifiers (order number and invoice number); lookups accept
// either. Total = subtotal + tax amount is the writer's responsibility and is
// not recomputed here.
type Purchase struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber      string              `gorm:"column:order_number;not null;uniqueIndex"`
	InvoiceNumber    string              `gorm:"column:invoice_number;not null;uniqueIndex"`
	CustomerUsername string              `gorm:"column:customer_username;not null"`
	Items            []PurchaseItem      `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
	Subtotal         decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null"`
	TaxRate          decimal.Decimal     `gorm:"column:tax_rate;type:numeric(6,4);not null;default:0"`
	TaxAmount        decimal.Decimal     `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0"`
	Total            decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null"`
	OrderStatus      enums.OrderStatus   `gorm:"column:order_status;type:text;not null;default:'pending'"`
	PaymentStatus    enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'unpaid'"`
	PaymentMethod    string              `gorm:"column:payment_method;not null;default:''"`
	PaidAmount       decimal.Decimal     `gorm:"column:paid_amount;type:numeric(12,2);not null;default:0"`
	RemainingBalance decimal.Decimal     `gorm:"column:remaining_balance;type:numeric(12,2);not null;default:0"`
	LastPaymentDate  *time.Time          `gorm:"column:last_payment_date"`
	PaymentHistory   []PaymentRecord     `gorm:"column:payment_history;type:jsonb;serializer:json"`
	DueDate          *time.Time          `gorm:"column:due_date"`
	Notes            string              `gorm:"column:notes;not null;default:''"`
	PaidAt           *time.Time          `gorm:"column:paid_at"`
	SentAt           *time.Time          `gorm:"column:sent_at"`
	ViewedAt         *time.Time          `gorm:"column:viewed_at"`
	ShippedAt        *time.Time          `gorm:"column:shipped_at"`
	DeliveredAt      *time.Time          `gorm:"column:delivered_at"`
	InvoiceGenerated bool                `gorm:"column:invoice_generated;not null;default:false"`
	InvoiceStatus    enums.InvoiceStatus `gorm:"column:invoice_status;type:text;not null;default:'draft'"`
	Source           string              `gorm:"column:source;not null;default:''"`
	GeneratedBy      string              `gorm:"column:generated_by;not null;default:''"`
	SchemaVersion    int                 `gorm:"column:schema_version;not null;default:1"`
	Tags             pq.StringArray      `gorm:"column:tags;type:text[]"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// PaymentRecord is one entry of a purchase's payment history, stored as jsonb.
type PaymentRecord struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}
