package product

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/petrolube/lubedash-backend/pkg/db/models"
	"github.com/petrolube/lubedash-backend/pkg/enums"
	pkgerrors "github.com/petrolube/lubedash-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubProductRepo struct {
	byID map[uuid.UUID]*models.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[uuid.UUID]*models.Product)}
}

func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.New()
	s.byID[product.ID] = product
	return product, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.byID[product.ID] = product
	return product, nil
}

func (s *stubProductRepo) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.byID {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) FindByName(ctx context.Context, name string, excludeID *uuid.UUID) (*models.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, p := range s.byID {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if strings.ToLower(p.Name) == needle {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := s.byID[id]; !ok {
		return 0, nil
	}
	delete(s.byID, id)
	return 1, nil
}

func (s *stubProductRepo) Categories(ctx context.Context) ([]CategorySummary, error) {
	return nil, nil
}

func validInput() ProductInput {
	return ProductInput{
		Name:      "Premium Synthetic 5W-30",
		Category:  "Synthetic Oil",
		Viscosity: "5W-30",
		Price:     decimal.NewFromFloat(42.50),
		Stock:     12,
	}
}

func TestCreateProduct(t *testing.T) {
	repo := newStubProductRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.CreateProduct(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Status != enums.RecordStatusActive {
		t.Fatalf("expected active status, got %s", dto.Status)
	}
	if !dto.Price.Equal(decimal.NewFromFloat(42.50)) {
		t.Fatalf("unexpected price %s", dto.Price)
	}
}

func TestCreateProductRejectsInvalidPayload(t *testing.T) {
	repo := newStubProductRepo()
	svc, _ := NewService(repo)

	input := validInput()
	input.Price = decimal.Zero
	_, err := svc.CreateProduct(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing should be persisted on validation failure")
	}
}

func TestCreateProductDuplicateNameCaseInsensitive(t *testing.T) {
	repo := newStubProductRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, validInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	input := validInput()
	input.Name = "PREMIUM SYNTHETIC 5w-30"
	_, err := svc.CreateProduct(ctx, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateProduct(t *testing.T) {
	repo := newStubProductRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Renaming to its own name is not a collision.
	input := validInput()
	input.Stock = 99
	updated, err := svc.UpdateProduct(ctx, created.ID, input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stock != 99 {
		t.Fatalf("stock not updated, got %d", updated.Stock)
	}

	_, err = svc.UpdateProduct(ctx, uuid.New(), validInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProductNameCollision(t *testing.T) {
	repo := newStubProductRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, validInput())
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second := validInput()
	second.Name = "Gear Oil 80W-90"
	secondDTO, err := svc.CreateProduct(ctx, second)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	collide := validInput()
	collide.Name = first.Name
	_, err = svc.UpdateProduct(ctx, secondDTO.ID, collide)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := newStubProductRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = svc.DeleteProduct(ctx, created.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
