package models

import "time"

// Buyer mirrors the legacy "Buyers" node; uid comes from the auth provider.
type Buyer struct {
	UID       string    `gorm:"column:uid;primaryKey"`
	Name      string    `gorm:"column:name;not null;default:''"`
	Address   string    `gorm:"column:address;not null;default:''"`
	Phone     string    `gorm:"column:phone;not null;default:''"`
	Email     string    `gorm:"column:email;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (Buyer) TableName() string { return "buyers" }
