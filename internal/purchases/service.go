package purchase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/petrolube/lubedash-backend/pkg/db"
	"github.com/petrolube/lubedash-backend/pkg/db/models"
	pkgerrors "github.com/petrolube/lubedash-backend/pkg/errors"
	"github.com/petrolube/lubedash-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service exposes purchase and invoice operations.
type Service interface {
	ListPurchases(ctx context.Context, query ListQuery) (*PurchaseList, error)
	CreatePurchase(ctx context.Context, input PurchaseInput) (*PurchaseDTO, error)
	GetPurchase(ctx context.Context, number string) (*PurchaseDTO, error)
	UpdatePurchase(ctx context.Context, number string, input UpdateInput) (*PurchaseDTO, error)
}

type purchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error)
	List(ctx context.Context, q ListQuery) ([]models.Purchase, int64, error)
	FindByNumber(ctx context.Context, number string) (*models.Purchase, error)
	Update(ctx context.Context, purchase *models.Purchase, replaceItems bool) (*models.Purchase, error)
}

type clientDirectory interface {
	PartyNamesByUsername(ctx context.Context, usernames []string) (map[string]string, error)
}

type service struct {
	repo    purchaseRepository
	clients clientDirectory
	now     func() time.Time
}

// NewService constructs a purchase service instance.
func NewService(repo purchaseRepository, clients clientDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchase repository required")
	}
	if clients == nil {
		return nil, fmt.Errorf("client directory required")
	}
	return &service{repo: repo, clients: clients, now: time.Now}, nil
}

// ListPurchases returns one flattened page of purchases, newest first, with
// customer usernames resolved to party names where a client record exists.
func (s *service) ListPurchases(ctx context.Context, query ListQuery) (*PurchaseList, error) {
	query.Page = pagination.Normalize(query.Page)

	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list purchases")
	}

	usernames := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.CustomerUsername]; ok {
			continue
		}
		seen[row.CustomerUsername] = struct{}{}
		usernames = append(usernames, row.CustomerUsername)
	}

	names, err := s.clients.PartyNamesByUsername(ctx, usernames)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve party names")
	}

	items := make([]PurchaseListItem, 0, len(rows))
	for i := range rows {
		items = append(items, TransformPurchase(&rows[i], names[rows[i].CustomerUsername]))
	}

	return &PurchaseList{
		Purchases:  items,
		Pagination: pagination.Page(total, query.Page),
	}, nil
}

// CreatePurchase persists a full purchase document, stamping createdAt and
// updatedAt with the current time. There is no idempotency key; repeated
// submissions are only bounded by the unique number indexes.
func (s *service) CreatePurchase(ctx context.Context, input PurchaseInput) (*PurchaseDTO, error) {
	if msg := requiredFieldError(input); msg != "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msg)
	}

	record, err := s.repo.Create(ctx, input.ToModel(s.now().UTC()))
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Order or invoice number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create purchase")
	}
	return FromModel(record), nil
}

// GetPurchase loads the full invoice view, matching on invoice number or
// order number.
func (s *service) GetPurchase(ctx context.Context, number string) (*PurchaseDTO, error) {
	record, err := s.findByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return FromModel(record), nil
}

// UpdatePurchase applies a partial update to the purchase matched on invoice
// number or order number and bumps updatedAt.
func (s *service) UpdatePurchase(ctx context.Context, number string, input UpdateInput) (*PurchaseDTO, error) {
	record, err := s.findByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	replaceItems := input.Apply(record)
	record.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, record, replaceItems)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update purchase")
	}
	return FromModel(updated), nil
}

func (s *service) findByNumber(ctx context.Context, number string) (*models.Purchase, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Invoice not found")
	}

	record, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find purchase")
	}
	return record, nil
}

func requiredFieldError(input PurchaseInput) string {
	switch {
	case strings.TrimSpace(input.OrderNumber) == "":
		return "Order number is required"
	case strings.TrimSpace(input.InvoiceNumber) == "":
		return "Invoice number is required"
	case strings.TrimSpace(input.CustomerUsername) == "":
		return "Customer username is required"
	default:
		return ""
	}
}
