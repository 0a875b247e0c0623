package models

import "time"

// Tenant is a barbershop ("contribuinte"). Key is supplied by the caller and
// partitions every other table.
type Tenant struct {
	Key     string `gorm:"column:contribuinte;primaryKey;size:64" json:"contribuinte"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	OpeningTime   string `gorm:"size:5" json:"opening_time"`
	ClosingTime   string `gorm:"size:5" json:"closing_time"`
	OperatingDays []int  `gorm:"type:text;serializer:json" json:"operating_days"`
	Timezone      string `gorm:"size:64" json:"timezone"`

	CreatedBy string `gorm:"size:128" json:"created_by"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OperatesOn reports whether weekday (0 = Sunday) is an operating day.
func (t *Tenant) OperatesOn(weekday int) bool {
	for _, d := range t.OperatingDays {
		if d == weekday {
			return true
		}
	}
	return false
}
