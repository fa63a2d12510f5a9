package client

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/petrolube/lubedash-backend/pkg/db/models"
	"github.com/petrolube/lubedash-backend/pkg/enums"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupClientsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS clients (
  id TEXT PRIMARY KEY,
  party_name TEXT NOT NULL,
  party_code TEXT NOT NULL UNIQUE,
  city TEXT NOT NULL,
  username TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS clients")
	})
	return db
}

func seedClient(t *testing.T, db *gorm.DB, name, code, username string, createdAt time.Time) *models.Client {
	t.Helper()
	record := &models.Client{
		ID:        uuid.New(),
		PartyName: name,
		PartyCode: code,
		City:      "Houston",
		Username:  username,
		Password:  "VL2024#ABC123",
		Status:    enums.RecordStatusActive,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func TestRepositoryListNewestFirst(t *testing.T) {
	db := setupClientsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	seedClient(t, db, "Older Co", "OLD1", "older_co_OLD1", base)
	newer := seedClient(t, db, "Newer Co", "NEW1", "newer_co_NEW1", base.Add(time.Hour))

	rows, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, newer.ID, rows[0].ID)

	rows, err = repo.List(ctx, "NEWER")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, newer.ID, rows[0].ID)
}

func TestRepositoryFindByPartyCode(t *testing.T) {
	db := setupClientsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seeded := seedClient(t, db, "Acme", "AC01", "acme_AC01", time.Now().UTC())

	found, err := repo.FindByPartyCode(ctx, "AC01")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, found.ID)

	_, err = repo.FindByPartyCode(ctx, "MISSING")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDelete(t *testing.T) {
	db := setupClientsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seeded := seedClient(t, db, "Acme", "AC01", "acme_AC01", time.Now().UTC())

	deleted, err := repo.Delete(ctx, seeded.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	deleted, err = repo.Delete(ctx, seeded.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, deleted)
}
