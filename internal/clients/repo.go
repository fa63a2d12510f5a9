package client

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/petrolube/lubedash-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for party records.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a clients repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new client row.
func (r *Repository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// List returns clients newest first, optionally narrowed by a
// case-insensitive search over name, code, city, and username.
func (r *Repository) List(ctx context.Context, search string) ([]models.Client, error) {
	query := r.db.WithContext(ctx).Model(&models.Client{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(party_name) LIKE ? OR LOWER(party_code) LIKE ? OR LOWER(city) LIKE ? OR LOWER(username) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var clients []models.Client
	if err := query.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// FindByID loads a single client by UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByPartyCode loads a client by its normalized party code.
func (r *Repository) FindByPartyCode(ctx context.Context, code string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("party_code = ?", code).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// PartyNamesByUsername resolves a batch of usernames to party names in one
// query. Usernames without a client record are absent from the result.
func (r *Repository) PartyNamesByUsername(ctx context.Context, usernames []string) (map[string]string, error) {
	names := make(map[string]string, len(usernames))
	if len(usernames) == 0 {
		return names, nil
	}

	var rows []models.Client
	if err := r.db.WithContext(ctx).
		Select("username", "party_name").
		Where("username IN ?", usernames).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.Username] = row.PartyName
	}
	return names, nil
}

// Delete removes the client and reports how many rows were affected.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
