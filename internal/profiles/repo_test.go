package profiles

import (
	"context"
	"testing"

	"github.com/mlisondra/tindahan-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProfilesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	buyers := `
CREATE TABLE IF NOT EXISTS buyers (
  uid TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`
	sellers := `
CREATE TABLE IF NOT EXISTS sellers (
  uid TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  shop_name TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  photo_url TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(buyers).Error)
	require.NoError(t, db.Exec(sellers).Error)
	return db
}

func TestRepositoryBuyerRoundTrip(t *testing.T) {
	db := setupProfilesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertBuyer(ctx, &models.Buyer{
		UID:     "b1",
		Name:    "Juan",
		Address: "Quezon City",
	}))

	record, err := repo.FindBuyer(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Juan", record.Name)
	assert.Equal(t, "Quezon City", record.Address)
}

func TestRepositoryFindBuyerMissing(t *testing.T) {
	db := setupProfilesTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindBuyer(context.Background(), "nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySellerRoundTrip(t *testing.T) {
	db := setupProfilesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertSeller(ctx, &models.Seller{
		UID:      "s1",
		Name:     "Maria",
		ShopName: "Maria's Sari-Sari",
	}))

	record, err := repo.FindSeller(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Maria's Sari-Sari", record.ShopName)
}
