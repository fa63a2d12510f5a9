package purchase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/petrolube/lubedash-backend/pkg/db/models"
	"github.com/petrolube/lubedash-backend/pkg/enums"
	pkgerrors "github.com/petrolube/lubedash-backend/pkg/errors"
	"github.com/petrolube/lubedash-backend/pkg/pagination"
	"github.com/petrolube/lubedash-backend/pkg/types"
)

type stubPurchaseRepo struct {
	records []*models.Purchase
}

func (s *stubPurchaseRepo) Create(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error) {
	s.records = append(s.records, purchase)
	return purchase, nil
}

func (s *stubPurchaseRepo) List(ctx context.Context, q ListQuery) ([]models.Purchase, int64, error) {
	matched := make([]models.Purchase, 0, len(s.records))
	for _, record := range s.records {
		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(record.OrderNumber), needle) &&
				!strings.Contains(strings.ToLower(record.CustomerUsername), needle) &&
				!strings.Contains(strings.ToLower(record.InvoiceNumber), needle) {
				continue
			}
		}
		matched = append(matched, *record)
	}

	total := int64(len(matched))
	if q.Page.Offset >= len(matched) {
		return nil, total, nil
	}
	end := q.Page.Offset + q.Page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Page.Offset:end], total, nil
}

func (s *stubPurchaseRepo) FindByNumber(ctx context.Context, number string) (*models.Purchase, error) {
	for _, record := range s.records {
		if record.InvoiceNumber == number || record.OrderNumber == number {
			return record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPurchaseRepo) Update(ctx context.Context, purchase *models.Purchase, replaceItems bool) (*models.Purchase, error) {
	return purchase, nil
}

type stubClientDirectory struct {
	names map[string]string
}

func (s *stubClientDirectory) PartyNamesByUsername(ctx context.Context, usernames []string) (map[string]string, error) {
	out := make(map[string]string, len(usernames))
	for _, username := range usernames {
		if name, ok := s.names[username]; ok {
			out[username] = name
		}
	}
	return out, nil
}

func newPurchaseService(t *testing.T, repo *stubPurchaseRepo, names map[string]string) *service {
	t.Helper()
	svc, err := NewService(repo, &stubClientDirectory{names: names})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	impl := svc.(*service)
	impl.now = func() time.Time {
		return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	}
	return impl
}

func TestListPurchasesResolvesClientNames(t *testing.T) {
	repo := &stubPurchaseRepo{}
	repo.records = append(repo.records, samplePurchase())
	other := samplePurchase()
	other.OrderNumber = "ORD-1002"
	other.InvoiceNumber = "INV-1002"
	other.CustomerUsername = "unknown_user"
	repo.records = append(repo.records, other)

	svc := newPurchaseService(t, repo, map[string]string{"acme_AC01": "Acme Lubricants"})

	list, err := svc.ListPurchases(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Purchases) != 2 {
		t.Fatalf("purchases = %d, want 2", len(list.Purchases))
	}
	if list.Purchases[0].ClientName != "Acme Lubricants" {
		t.Fatalf("resolved name = %q", list.Purchases[0].ClientName)
	}
	if list.Purchases[1].ClientName != "unknown_user" {
		t.Fatalf("fallback name = %q", list.Purchases[1].ClientName)
	}
	want := types.Pagination{Total: 2, Limit: pagination.DefaultLimit, Offset: 0, HasMore: false}
	if list.Pagination != want {
		t.Fatalf("pagination = %+v, want %+v", list.Pagination, want)
	}
}

func TestListPurchasesSearchAndPaging(t *testing.T) {
	repo := &stubPurchaseRepo{}
	for _, number := range []string{"ORD-2001", "ORD-2002", "ORD-2003"} {
		record := samplePurchase()
		record.OrderNumber = number
		record.InvoiceNumber = strings.Replace(number, "ORD", "INV", 1)
		repo.records = append(repo.records, record)
	}

	svc := newPurchaseService(t, repo, nil)

	list, err := svc.ListPurchases(context.Background(), ListQuery{
		Search: "ord-200",
		Page:   pagination.Params{Limit: 2, Offset: 2},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Purchases) != 1 {
		t.Fatalf("purchases = %d, want 1", len(list.Purchases))
	}
	if list.Pagination.Total != 3 {
		t.Fatalf("total = %d, want 3", list.Pagination.Total)
	}
	if list.Pagination.HasMore {
		t.Fatal("hasMore = true, want false")
	}
}

func TestCreatePurchaseStampsTimestamps(t *testing.T) {
	repo := &stubPurchaseRepo{}
	svc := newPurchaseService(t, repo, nil)

	shipped := types.NewFlexTime(time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC))
	dto, err := svc.CreatePurchase(context.Background(), PurchaseInput{
		OrderNumber:      "ORD-3001",
		InvoiceNumber:    "INV-3001",
		CustomerUsername: "acme_AC01",
		Items: []ItemInput{
			{Name: "Synthetic 5W-30", Quantity: 4, UnitPrice: decimal.NewFromInt(45), TotalPrice: decimal.NewFromInt(180)},
		},
		Pricing:    Pricing{Subtotal: decimal.NewFromInt(180), Total: decimal.NewFromInt(180)},
		Timestamps: TimestampsDTO{ShippedAt: shipped},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(repo.records) != 1 {
		t.Fatalf("records = %d, want 1", len(repo.records))
	}
	stored := repo.records[0]
	wantNow := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	if !stored.CreatedAt.Equal(wantNow) || !stored.UpdatedAt.Equal(wantNow) {
		t.Fatalf("createdAt/updatedAt = %v/%v, want %v", stored.CreatedAt, stored.UpdatedAt, wantNow)
	}
	if stored.ShippedAt == nil || !stored.ShippedAt.Equal(shipped.Time) {
		t.Fatalf("shippedAt = %v", stored.ShippedAt)
	}
	if stored.OrderStatus != enums.OrderStatusPending || stored.PaymentStatus != enums.PaymentStatusUnpaid {
		t.Fatalf("defaulted statuses = %q/%q", stored.OrderStatus, stored.PaymentStatus)
	}
	if dto.Status != enums.DerivedStatusShipped {
		t.Fatalf("derived status = %q", dto.Status)
	}
	if len(stored.Items) != 1 || stored.Items[0].PurchaseID != stored.ID {
		t.Fatalf("items not bound to purchase: %+v", stored.Items)
	}
}

func TestCreatePurchaseRequiresIdentifiers(t *testing.T) {
	svc := newPurchaseService(t, &stubPurchaseRepo{}, nil)

	_, err := svc.CreatePurchase(context.Background(), PurchaseInput{
		InvoiceNumber:    "INV-1",
		CustomerUsername: "acme_AC01",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
	if typed.Message() != "Order number is required" {
		t.Fatalf("message = %q", typed.Message())
	}
}

func TestGetPurchaseMatchesEitherNumber(t *testing.T) {
	repo := &stubPurchaseRepo{}
	repo.records = append(repo.records, samplePurchase())
	svc := newPurchaseService(t, repo, nil)

	byInvoice, err := svc.GetPurchase(context.Background(), "INV-1001")
	if err != nil {
		t.Fatalf("get by invoice: %v", err)
	}
	byOrder, err := svc.GetPurchase(context.Background(), "ORD-1001")
	if err != nil {
		t.Fatalf("get by order: %v", err)
	}
	if byInvoice.ID != byOrder.ID {
		t.Fatal("invoice and order lookups returned different records")
	}

	_, err = svc.GetPurchase(context.Background(), "INV-MISSING")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
	if typed.Message() != "Invoice not found" {
		t.Fatalf("message = %q", typed.Message())
	}
}

func TestUpdatePurchaseBumpsUpdatedAt(t *testing.T) {
	repo := &stubPurchaseRepo{}
	record := samplePurchase()
	repo.records = append(repo.records, record)
	svc := newPurchaseService(t, repo, nil)

	paid := enums.PaymentStatusPaid
	notes := "settled in full"
	dto, err := svc.UpdatePurchase(context.Background(), "INV-1001", UpdateInput{
		PaymentStatus: &paid,
		Notes:         &notes,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	wantNow := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	if !record.UpdatedAt.Equal(wantNow) {
		t.Fatalf("updatedAt = %v, want %v", record.UpdatedAt, wantNow)
	}
	if record.PaymentStatus != enums.PaymentStatusPaid || record.Notes != "settled in full" {
		t.Fatalf("update not applied: %+v", record)
	}
	if dto.Status != enums.DerivedStatusProcessing {
		t.Fatalf("derived status = %q", dto.Status)
	}

	_, err = svc.UpdatePurchase(context.Background(), "INV-MISSING", UpdateInput{Notes: &notes})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}
