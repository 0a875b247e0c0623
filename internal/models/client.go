package models

import "time"

// Cliente simples, sem login, vinculado à barbearia
type Client struct {
	TenantKey string `gorm:"primaryKey;size:64" json:"contribuinte"`
	ID        string `gorm:"primaryKey;size:36" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	VisitCount  int        `gorm:"not null;default:0" json:"visit_count"`
	LastVisitAt *time.Time `json:"last_visit_at"`
	BirthDate   *string    `gorm:"size:10" json:"birth_date"`
	Active      bool       `gorm:"default:true;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
