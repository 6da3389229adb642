package models

import "time"

// Seller mirrors the legacy "Seller" node.
type Seller struct {
	UID       string    `gorm:"column:uid;primaryKey"`
	Name      string    `gorm:"column:name;not null;default:''"`
	ShopName  string    `gorm:"column:shop_name;not null;default:''"`
	Phone     string    `gorm:"column:phone;not null;default:''"`
	Email     string    `gorm:"column:email;not null;default:''"`
	Address   string    `gorm:"column:address;not null;default:''"`
	PhotoURL  string    `gorm:"column:photo_url;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Seller) TableName() string { return "sellers" }
