package models

import "time"

type WorkingHours struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	TenantKey  string `gorm:"size:64;index:idx_wh_employee" json:"-"`
	EmployeeID string `gorm:"size:36;index:idx_wh_employee" json:"employee_id"`

	Weekday int `json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
