package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barbearia-agenda/internal/middleware"
	ucTenant "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/tenant"
)

type TenantHandler struct {
	provision *ucTenant.ProvisionTenant
	exists    *ucTenant.ExistsTenant
	manage    *ucTenant.Manage
}

func NewTenantHandler(
	provision *ucTenant.ProvisionTenant,
	exists *ucTenant.ExistsTenant,
	manage *ucTenant.Manage,
) *TenantHandler {
	return &TenantHandler{
		provision: provision,
		exists:    exists,
		manage:    manage,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ProvisionTenantRequest struct {
	Key           string `json:"contribuinte" binding:"required,contribuinte"`
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	OpeningTime   string `json:"opening_time" binding:"omitempty,hhmm"`
	ClosingTime   string `json:"closing_time" binding:"omitempty,hhmm"`
	OperatingDays []int  `json:"operating_days" binding:"dive,weekday"`
	Timezone      string `json:"timezone"`
	CreatedBy     string `json:"created_by" binding:"required"`
}

type UpdateTenantRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	OpeningTime   *string `json:"opening_time"`
	ClosingTime   *string `json:"closing_time"`
	OperatingDays *[]int  `json:"operating_days"`
	Timezone      *string `json:"timezone"`
}

// ======================================================
// PROVISION
// ======================================================

func (h *TenantHandler) Provision(c *gin.Context) {
	var req ProvisionTenantRequest
	if !bindJSON(c, &req) {
		return
	}

	boot, err := h.provision.Execute(c.Request.Context(), ucTenant.ProvisionTenantInput{
		Key:           req.Key,
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		OpeningTime:   req.OpeningTime,
		ClosingTime:   req.ClosingTime,
		OperatingDays: req.OperatingDays,
		Timezone:      req.Timezone,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"tenant":   boot.Tenant,
		"sentinel": boot.Sentinel,
		"services": boot.Services,
	})
}

// ======================================================
// EXISTS
// ======================================================

// Exists answers {"exists": bool}. With ?strict=true a backend failure is
// reported as 503 instead of false.
func (h *TenantHandler) Exists(c *gin.Context) {
	key := middleware.TenantKey(c)

	if c.Query("strict") == "true" {
		ok, err := h.exists.Strict(c.Request.Context(), key)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"exists": ok})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": h.exists.Execute(c.Request.Context(), key)})
}

// ======================================================
// READ / UPDATE / DEACTIVATE
// ======================================================

func (h *TenantHandler) Get(c *gin.Context) {
	t, err := h.manage.Get(c.Request.Context(), middleware.TenantKey(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *TenantHandler) Update(c *gin.Context) {
	var req UpdateTenantRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.manage.Update(c.Request.Context(), middleware.TenantKey(c), ucTenant.UpdateTenantInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		OpeningTime:   req.OpeningTime,
		ClosingTime:   req.ClosingTime,
		OperatingDays: req.OperatingDays,
		Timezone:      req.Timezone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *TenantHandler) Deactivate(c *gin.Context) {
	if err := h.manage.Deactivate(c.Request.Context(), middleware.TenantKey(c)); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
