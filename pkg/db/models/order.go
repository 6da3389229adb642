package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlisondra/tindahan-backend/pkg/enums"
	"github.com/mlisondra/tindahan-backend/pkg/types"
)

// Order is the per-seller order record produced by checkout. Items are a
// point-in-time snapshot of the cart lines belonging to that seller; the
// record is immutable after creation except for status.
type Order struct {
	ID           string            `gorm:"column:id;primaryKey"`
	BuyerID      string            `gorm:"column:buyer_id;not null"`
	SellerID     string            `gorm:"column:seller_id;not null"`
	Items        types.CartLines   `gorm:"column:items;type:jsonb;serializer:json"`
	TotalPrice   decimal.Decimal   `gorm:"column:total_price;type:numeric(14,2);not null"`
	Status       enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	BuyerName    string            `gorm:"column:buyer_name;not null;default:''"`
	BuyerAddress string            `gorm:"column:buyer_address;not null;default:''"`
	SellerName   string            `gorm:"column:seller_name;not null;default:''"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }
