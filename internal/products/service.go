package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/petrolube/lubedash-backend/pkg/db"
	"github.com/petrolube/lubedash-backend/pkg/db/models"
	"github.com/petrolube/lubedash-backend/pkg/enums"
	pkgerrors "github.com/petrolube/lubedash-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
	ListCategories(ctx context.Context) ([]CategorySummary, error)
}

type productRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByName(ctx context.Context, name string, excludeID *uuid.UUID) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Categories(ctx context.Context) ([]CategorySummary, error)
}

type service struct {
	repo productRepository
}

// NewService constructs a product service instance.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// CreateProduct validates the payload, rejects duplicate names, and persists
// the catalog entry.
func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	validation := ValidateProductInput(input)
	if !validation.IsValid {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").
			WithDetails(map[string]any{"errors": validation.Errors})
	}

	if err := s.ensureUniqueName(ctx, input.Name, nil); err != nil {
		return nil, err
	}

	record := applyInput(&models.Product{ID: uuid.New(), Status: enums.RecordStatusActive}, input)

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Product with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return FromModel(created), nil
}

// UpdateProduct replaces the mutable fields of an existing entry.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error) {
	validation := ValidateProductInput(input)
	if !validation.IsValid {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").
			WithDetails(map[string]any{"errors": validation.Errors})
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	if err := s.ensureUniqueName(ctx, input.Name, &id); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, applyInput(record, input))
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Product with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return FromModel(updated), nil
}

// DeleteProduct removes the catalog entry.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	return nil
}

// GetProduct loads one product by id.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return FromModel(record), nil
}

// ListProducts returns catalog entries matching the filter.
func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	dtos := make([]ProductDTO, len(rows))
	for i := range rows {
		dtos[i] = *FromModel(&rows[i])
	}
	return dtos, nil
}

// ListCategories returns per-category aggregates, most populated first.
func (s *service) ListCategories(ctx context.Context) ([]CategorySummary, error) {
	summaries, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate categories")
	}
	return summaries, nil
}

func (s *service) ensureUniqueName(ctx context.Context, name string, excludeID *uuid.UUID) error {
	if _, err := s.repo.FindByName(ctx, name, excludeID); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "Product with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lookup product name")
	}
	return nil
}

func applyInput(record *models.Product, input ProductInput) *models.Product {
	record.Name = strings.TrimSpace(input.Name)
	record.Category = strings.TrimSpace(input.Category)
	record.Viscosity = strings.TrimSpace(input.Viscosity)
	record.Price = input.Price
	record.Stock = input.Stock
	record.Description = strings.TrimSpace(input.Description)
	record.Image = input.Image
	return record
}
