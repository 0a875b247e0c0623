package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotFoundName is shown for a reference whose record no longer exists.
const NotFoundName = "não encontrado"

type ServiceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AppointmentView struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	Paid      bool   `json:"paid"`
	Notes     string `json:"notes"`

	TotalPrice decimal.Decimal `json:"total_price"`

	EmployeeID   string       `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	ClientID     string       `json:"client_id"`
	ClientName   string       `json:"client_name"`
	ClientPhone  string       `json:"client_phone"`
	Services     []ServiceRef `json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DailySummary struct {
	Date         string            `json:"date"`
	Total        int               `json:"total"`
	ByStatus     map[string]int    `json:"by_status"`
	Revenue      decimal.Decimal   `json:"revenue"`
	Appointments []AppointmentView `json:"appointments"`
}
