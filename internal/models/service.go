package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	TenantKey string `gorm:"primaryKey;size:64" json:"contribuinte"`
	ID        string `gorm:"primaryKey;size:36" json:"id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	DurationMin int             `gorm:"not null" json:"duration_min"`
	Price       decimal.Decimal `gorm:"type:numeric" json:"price"`
	Category    string          `gorm:"size:50" json:"category"`
	Active      bool            `gorm:"default:true;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
