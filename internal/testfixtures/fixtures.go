package testfixtures

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

// Seed writes rows directly, bypassing the use cases.
type Seed struct {
	tb  testing.TB
	db  *gorm.DB
	Key string
}

func NewSeed(tb testing.TB, db *gorm.DB, key string) *Seed {
	return &Seed{tb: tb, db: db, Key: key}
}

func (s *Seed) create(v any) {
	s.tb.Helper()
	if err := s.db.Create(v).Error; err != nil {
		s.tb.Fatalf("seed: %v", err)
	}
}

// Tenant creates an active barbershop open 09:00-18:00 Monday to Saturday,
// plus its "all employees" record.
func (s *Seed) Tenant() *models.Tenant {
	t := &models.Tenant{
		Key:           s.Key,
		Name:          "Barbearia Teste",
		OpeningTime:   "09:00",
		ClosingTime:   "18:00",
		OperatingDays: []int{1, 2, 3, 4, 5, 6},
		Timezone:      "America/Sao_Paulo",
		Active:        true,
	}
	s.create(t)
	s.create(&models.Employee{
		TenantKey:   s.Key,
		ID:          models.AllEmployeesID,
		Name:        "Todos os Funcionários",
		Specialties: []string{},
		Active:      true,
	})
	return t
}

func (s *Seed) Employee(name string) *models.Employee {
	e := &models.Employee{
		TenantKey:   s.Key,
		ID:          uuid.NewString(),
		Name:        name,
		Specialties: []string{},
		Active:      true,
	}
	s.create(e)
	return e
}

func (s *Seed) Client(name string) *models.Client {
	c := &models.Client{
		TenantKey: s.Key,
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     "11999990000",
		Active:    true,
	}
	s.create(c)
	return c
}

func (s *Seed) Service(name string, minutes int, price string) *models.Service {
	sv := &models.Service{
		TenantKey:   s.Key,
		ID:          uuid.NewString(),
		Name:        name,
		DurationMin: minutes,
		Price:       decimal.RequireFromString(price),
		Category:    "Corte",
		Active:      true,
	}
	s.create(sv)
	return sv
}

// Appointment stores a booking as-is, without conflict checks.
func (s *Seed) Appointment(employeeID, clientID, date, start, end, status string) *models.Appointment {
	ap := &models.Appointment{
		TenantKey:  s.Key,
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		ClientID:   clientID,
		ServiceIDs: []string{},
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		TotalPrice: decimal.Zero,
		Status:     status,
	}
	s.create(ap)
	return ap
}

// Deactivate flips active off on any directory row.
func (s *Seed) Deactivate(model any, id string) {
	s.tb.Helper()
	if err := s.db.Model(model).
		Where("tenant_key = ? AND id = ?", s.Key, id).
		Updates(map[string]any{"active": false, "updated_at": time.Now()}).Error; err != nil {
		s.tb.Fatalf("seed deactivate: %v", err)
	}
}
