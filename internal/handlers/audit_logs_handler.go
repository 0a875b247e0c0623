package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barbearia-agenda/internal/middleware"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditReader interface {
	List(ctx context.Context, tenantKey string, f audit.ListFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditReader
}

func NewAuditLogsHandler(logs AuditReader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List pages the tenant's audit trail. ?from= and ?to= are dates (UTC), both
// inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		return
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.ListFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Filtros de data
	// --------------------------------------------------

	if s := c.Query("from"); s != "" {
		from, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Data inicial inválida.")
			return
		}
		f.From = &from
	}
	if s := c.Query("to"); s != "" {
		to, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Data final inválida.")
			return
		}
		to = to.Add(24 * time.Hour)
		f.To = &to
	}

	logs, total, err := h.logs.List(c.Request.Context(), middleware.TenantKey(c), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
