package catalog

import (
	"context"

	"github.com/mlisondra/tindahan-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for seller catalog documents.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindCatalog loads a seller's raw catalog document.
func (r *Repository) FindCatalog(ctx context.Context, sellerID string) (*models.SellerCatalog, error) {
	var record models.SellerCatalog
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListSellers returns all sellers ordered by shop name.
func (r *Repository) ListSellers(ctx context.Context) ([]models.Seller, error) {
	var rows []models.Seller
	if err := r.db.WithContext(ctx).
		Order("shop_name ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertCatalog stores a seller's catalog document. Used by import tooling
// and tests.
func (r *Repository) UpsertCatalog(ctx context.Context, record *models.SellerCatalog) error {
	return r.db.WithContext(ctx).Save(record).Error
}
