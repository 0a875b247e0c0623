package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/infra/lock"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

// lockWait bounds how long a writer queues behind another on the same
// employee day when the caller set no deadline.
const lockWait = 5 * time.Second

// Names resolves display names for views. Inactive records are included.
type Names interface {
	EmployeesByID(ctx context.Context, tenantKey string, ids []string) (map[string]models.Employee, error)
	ClientsByID(ctx context.Context, tenantKey string, ids []string) (map[string]models.Client, error)
	ServicesByID(ctx context.Context, tenantKey string, ids []string) (map[string]models.Service, error)
}

// lockSlots serializes writers on every (tenant, employee, date) in keys.
// A lock that cannot be taken means nothing was written.
func lockSlots(ctx context.Context, l lock.Locker, keys ...string) (func(), error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, lockWait)
		defer cancel()
	}

	unlock, err := lock.LockAll(ctx, l, keys...)
	if err != nil {
		return nil, httperr.BackendUnavailable("slot_lock_unavailable", err)
	}
	return unlock, nil
}
