package tenant

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

func TestNewBootstrap(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("svc-%d", n)
	}

	b := NewBootstrap(models.Tenant{Key: "12345678", Name: "Barbearia"}, "user-1", now, newID)

	assert.Equal(t, "user-1", b.Tenant.CreatedBy)
	assert.True(t, b.Tenant.Active)
	assert.Equal(t, now, b.Tenant.CreatedAt)

	assert.Equal(t, models.AllEmployeesID, b.Sentinel.ID)
	assert.Equal(t, "12345678", b.Sentinel.TenantKey)
	assert.Equal(t, SentinelEmployeeName, b.Sentinel.Name)
	assert.True(t, b.Sentinel.IsSentinel())

	require.Len(t, b.Services, 3)
	want := []struct {
		name     string
		minutes  int
		price    string
		category string
	}{
		{"Corte Masculino", 30, "25", "Corte"},
		{"Barba", 20, "15", "Barba"},
		{"Corte + Barba", 45, "35", "Pacote"},
	}
	for i, w := range want {
		s := b.Services[i]
		assert.Equal(t, fmt.Sprintf("svc-%d", i+1), s.ID)
		assert.Equal(t, "12345678", s.TenantKey)
		assert.Equal(t, w.name, s.Name)
		assert.Equal(t, w.minutes, s.DurationMin)
		assert.Equal(t, w.price, s.Price.String())
		assert.Equal(t, w.category, s.Category)
		assert.True(t, s.Active)
	}
}
