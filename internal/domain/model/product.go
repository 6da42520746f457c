package model

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID          int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string                      `gorm:"type:varchar(255);not null" json:"name"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Price       float64                     `gorm:"not null" json:"price"`
	Images      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"images"`
	Category    string                      `gorm:"type:varchar(100);not null;index" json:"category"`
	InStock     bool                        `gorm:"not null;default:true" json:"inStock"`
	CreatedAt   time.Time                   `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"not null;autoUpdateTime" json:"-"`
}
