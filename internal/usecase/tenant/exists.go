package tenant

import (
	"context"

	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/tenant"
)

type ExistsTenant struct {
	repo domain.Repository
}

func NewExistsTenant(repo domain.Repository) *ExistsTenant {
	return &ExistsTenant{repo: repo}
}

// Execute answers false both for an absent tenant and for a failed lookup.
// The failure is logged only. Callers must read false as "provisioning may
// be attempted", never as proof of absence. The key is matched exactly, the
// same way provisioning stores it.
func (uc *ExistsTenant) Execute(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}

	ok, err := uc.repo.TenantExists(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("contribuinte", key).Msg("tenant existence check failed, reporting absent")
		return false
	}
	return ok
}

// Strict is Execute without swallowing backend failures.
func (uc *ExistsTenant) Strict(ctx context.Context, key string) (bool, error) {
	return uc.repo.TenantExists(ctx, key)
}
