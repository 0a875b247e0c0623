package models

import "time"

type Employee struct {
	TenantKey string `gorm:"primaryKey;size:64" json:"contribuinte"`
	ID        string `gorm:"primaryKey;size:36" json:"id"`

	Name        string   `gorm:"size:100;not null" json:"name"`
	Email       string   `gorm:"size:100" json:"email"`
	Phone       string   `gorm:"size:20" json:"phone"`
	Specialties []string `gorm:"type:text;serializer:json" json:"specialties"`
	Active      bool     `gorm:"default:true;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AllEmployeesID is the id of the "Todos os Funcionários" record created at
// provisioning. It stands for "no employee filter" and never books anything.
const AllEmployeesID = "0"

func (e *Employee) IsSentinel() bool {
	return e.ID == AllEmployeesID
}
