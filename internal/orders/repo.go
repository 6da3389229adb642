package orders

import (
	"context"

	pkgdb "github.com/mlisondra/tindahan-backend/pkg/db"
	"github.com/mlisondra/tindahan-backend/pkg/db/models"
	"github.com/mlisondra/tindahan-backend/pkg/enums"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for order records.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new order record. A reused order id surfaces as a
// conflict so checkout never silently overwrites an existing order.
func (r *Repository) Create(ctx context.Context, record *models.Order) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order already exists")
		}
		return err
	}
	return nil
}

// FindByID loads a single order.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var record models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByBuyer returns the buyer's orders, newest first.
func (r *Repository) ListByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	var rows []models.Order
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBySeller returns the seller's incoming orders, newest first.
func (r *Repository) ListBySeller(ctx context.Context, sellerID string) ([]models.Order, error) {
	var rows []models.Order
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus persists a status change.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
