package tenant

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Name          *string
	Phone         *string
	Address       *string
	OpeningTime   *string
	ClosingTime   *string
	OperatingDays *[]int
	Timezone      *string
}

type Repository interface {
	// TenantExists distinguishes "absent" (false, nil) from a failed lookup
	// (false, err).
	TenantExists(ctx context.Context, key string) (bool, error)

	GetTenant(ctx context.Context, key string) (*models.Tenant, error)

	// Provision writes the whole bootstrap in one transaction. A duplicate
	// key fails with AlreadyExists and leaves nothing behind.
	Provision(ctx context.Context, b Bootstrap) error

	UpdateTenant(ctx context.Context, key string, p Patch, now time.Time) (*models.Tenant, error)

	DeactivateTenant(ctx context.Context, key string, now time.Time) error
}
