package purchase

import (
	"context"
	"strings"

	"github.com/petrolube/lubedash-backend/pkg/db/models"
	"github.com/petrolube/lubedash-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ListQuery narrows and pages the purchase listing.
type ListQuery struct {
	Search string
	Page   pagination.Params
}

// Repository exposes persistence operations for purchase documents.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a purchases repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the purchase together with its item rows.
func (r *Repository) Create(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error) {
	if err := r.db.WithContext(ctx).Create(purchase).Error; err != nil {
		return nil, err
	}
	return purchase, nil
}

// List returns one page of purchases, newest first, plus the total match
// count. The search term filters across order number, customer username, and
// invoice number, case-insensitively.
func (r *Repository) List(ctx context.Context, q ListQuery) ([]models.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Purchase{})

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(order_number) LIKE ? OR LOWER(customer_username) LIKE ? OR LOWER(invoice_number) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := pagination.Normalize(q.Page)
	var purchases []models.Purchase
	if err := query.
		Preload("Items").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// FindByNumber loads one purchase matched on invoice number or order number.
func (r *Repository) FindByNumber(ctx context.Context, number string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("invoice_number = ? OR order_number = ?", number, number).
		First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// Update saves the purchase row. When replaceItems is set the stored item
// rows are rewritten from purchase.Items inside the same transaction.
func (r *Repository) Update(ctx context.Context, purchase *models.Purchase, replaceItems bool) (*models.Purchase, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(purchase).Error; err != nil {
			return err
		}
		if !replaceItems {
			return nil
		}
		if err := tx.Delete(&models.PurchaseItem{}, "purchase_id = ?", purchase.ID).Error; err != nil {
			return err
		}
		if len(purchase.Items) == 0 {
			return nil
		}
		return tx.Create(&purchase.Items).Error
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}
