package tenant

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

const SentinelEmployeeName = "Todos os Funcionários"

type SeedService struct {
	Name        string
	Description string
	DurationMin int
	Price       decimal.Decimal
	Category    string
}

// SeedServices is the starter catalog every new barbershop receives.
func SeedServices() []SeedService {
	return []SeedService{
		{
			Name:        "Corte Masculino",
			Description: "Corte de cabelo masculino tradicional",
			DurationMin: 30,
			Price:       decimal.RequireFromString("25.00"),
			Category:    "Corte",
		},
		{
			Name:        "Barba",
			Description: "Aparar e modelar barba",
			DurationMin: 20,
			Price:       decimal.RequireFromString("15.00"),
			Category:    "Barba",
		},
		{
			Name:        "Corte + Barba",
			Description: "Pacote completo corte e barba",
			DurationMin: 45,
			Price:       decimal.RequireFromString("35.00"),
			Category:    "Pacote",
		},
	}
}

// Bootstrap is everything provisioning writes. All of it commits together or
// not at all.
type Bootstrap struct {
	Tenant   models.Tenant
	Sentinel models.Employee
	Services []models.Service
}

func NewBootstrap(t models.Tenant, createdBy string, now time.Time, newID func() string) Bootstrap {
	t.CreatedBy = createdBy
	t.Active = true
	t.CreatedAt = now
	t.UpdatedAt = now

	b := Bootstrap{
		Tenant: t,
		Sentinel: models.Employee{
			TenantKey:   t.Key,
			ID:          models.AllEmployeesID,
			Name:        SentinelEmployeeName,
			Specialties: []string{},
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	for _, s := range SeedServices() {
		b.Services = append(b.Services, models.Service{
			TenantKey:   t.Key,
			ID:          newID(),
			Name:        s.Name,
			Description: s.Description,
			DurationMin: s.DurationMin,
			Price:       s.Price,
			Category:    s.Category,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return b
}
