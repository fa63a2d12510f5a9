package client

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

// Service exposes party account management operations.
type Service interface {
	CreateClient(ctx context.Context, input ClientInput) (*CreateClientResult, error)
	ListClients(ctx context.Context, search string) ([]ClientDTO, error)
	GetClient(ctx context.Context, id uuid.UUID) (*ClientDTO, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type clientRepository interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	List(ctx context.Context, search string) ([]models.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindByPartyCode(ctx context.Context, code string) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type service struct {
	repo clientRepository
}

// NewService constructs a client service instance.
func NewService(repo clientRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("client repository required")
	}
	return &service{repo: repo}, nil
}

// CreateClient validates the input, rejects duplicate party codes, generates
// the initial credentials, and persists the record.
func (s *service) CreateClient(ctx context.Context, input ClientInput) (*CreateClientResult, error) {
	validation := ValidateClientInput(input)
	if !validation.IsValid {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").
			WithDetails(map[string]any{"errors": validation.Errors})
	}

	code := NormalizePartyCode(input.PartyCode)
	if _, err := s.repo.FindByPartyCode(ctx, code); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Party code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lookup party code")
	}

	credentials, err := GenerateCredentials(input.PartyName, input.PartyCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate credentials")
	}

	record := &models.Client{
		ID:        uuid.New(),
		PartyName: strings.TrimSpace(input.PartyName),
		PartyCode: code,
		City:      strings.TrimSpace(input.City),
		Username:  credentials.Username,
		Password:  credentials.Password,
		Status:    enums.RecordStatusActive,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Party code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert client")
	}

	return &CreateClientResult{
		Client:      FromModel(created),
		Credentials: credentials,
	}, nil
}

// ListClients returns party records, newest first, optionally filtered by
// a search term.
func (s *service) ListClients(ctx context.Context, search string) ([]ClientDTO, error) {
	rows, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list clients")
	}
	dtos := make([]ClientDTO, len(rows))
	for i := range rows {
		dtos[i] = *FromModel(&rows[i])
	}
	return dtos, nil
}

// GetClient loads one party record by id.
func (s *service) GetClient(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load client")
	}
	return FromModel(record), nil
}

// DeleteClient removes the party record.
func (s *service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete client")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Client not found")
	}
	return nil
}
