package profiles

import (
	"context"

	"github.com/mlisondra/tindahan-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for buyer and seller profiles.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profiles repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindBuyer loads a buyer profile by uid.
func (r *Repository) FindBuyer(ctx context.Context, uid string) (*models.Buyer, error) {
	var record models.Buyer
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindSeller loads a seller profile by uid.
func (r *Repository) FindSeller(ctx context.Context, uid string) (*models.Seller, error) {
	var record models.Seller
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpsertBuyer creates or replaces a buyer profile.
func (r *Repository) UpsertBuyer(ctx context.Context, record *models.Buyer) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// UpsertSeller creates or replaces a seller profile.
func (r *Repository) UpsertSeller(ctx context.Context, record *models.Seller) error {
	return r.db.WithContext(ctx).Save(record).Error
}
