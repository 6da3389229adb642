package models

import (
	"encoding/json"
	"time"
)

// SellerCatalog holds a seller's product document imported from the legacy
// realtime-database export. The doc is kept raw; child node casing and field
// encodings vary per seller and are normalized on read.
type SellerCatalog struct {
	SellerID  string          `gorm:"column:seller_id;primaryKey"`
	Doc       json.RawMessage `gorm:"column:doc;type:jsonb"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (SellerCatalog) TableName() string { return "seller_catalogs" }
