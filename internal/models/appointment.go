package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment is never deleted; cancellation is a status. The partial unique
// index rejects two live bookings starting at the same minute for the same
// employee, backing up the locked conflict check.
type Appointment struct {
	TenantKey string `gorm:"primaryKey;size:64;uniqueIndex:idx_appointment_slot,where:status <> 'cancelled';index:idx_appointment_day" json:"contribuinte"`
	ID        string `gorm:"primaryKey;size:36" json:"id"`

	EmployeeID string   `gorm:"size:36;not null;uniqueIndex:idx_appointment_slot;index:idx_appointment_day" json:"employee_id"`
	ClientID   string   `gorm:"size:36;not null" json:"client_id"`
	ServiceIDs []string `gorm:"type:text;serializer:json" json:"service_ids"`

	Date      string `gorm:"size:10;not null;uniqueIndex:idx_appointment_slot;index:idx_appointment_day" json:"date"`
	StartTime string `gorm:"size:5;not null;uniqueIndex:idx_appointment_slot" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	TotalPrice decimal.Decimal `gorm:"type:numeric" json:"total_price"`
	Status     string          `gorm:"size:20;default:'scheduled'" json:"status"`
	Paid       bool            `gorm:"not null;default:false" json:"paid"`
	Notes      string          `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
