package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barbearia-agenda/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	propose  *ucAppointment.ProposeAppointment
	update   *ucAppointment.UpdateAppointment
	calendar *ucAppointment.Calendar
}

func NewAppointmentHandler(
	propose *ucAppointment.ProposeAppointment,
	update *ucAppointment.UpdateAppointment,
	calendar *ucAppointment.Calendar,
) *AppointmentHandler {
	return &AppointmentHandler{
		propose:  propose,
		update:   update,
		calendar: calendar,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	EmployeeID string           `json:"employee_id" binding:"required"`
	ClientID   string           `json:"client_id" binding:"required"`
	ServiceIDs []string         `json:"service_ids"`
	Date       string           `json:"date" binding:"required,isodate"`
	StartTime  string           `json:"start_time" binding:"required,hhmm"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	Notes      string           `json:"notes"`
}

// UpdateAppointmentRequest is a patch: absent fields stay as they are.
type UpdateAppointmentRequest struct {
	Status     *string          `json:"status"`
	EmployeeID *string          `json:"employee_id"`
	ClientID   *string          `json:"client_id"`
	ServiceIDs *[]string        `json:"service_ids"`
	Date       *string          `json:"date" binding:"omitempty,isodate"`
	StartTime  *string          `json:"start_time" binding:"omitempty,hhmm"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	Paid       *bool            `json:"paid"`
	Notes      *string          `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	tenantKey := middleware.TenantKey(c)

	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.propose.Execute(c.Request.Context(), ucAppointment.ProposeAppointmentInput{
		TenantKey:     tenantKey,
		EmployeeID:    req.EmployeeID,
		ClientID:      req.ClientID,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		StartTime:     req.StartTime,
		PriceOverride: req.TotalPrice,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	view, err := h.calendar.Get(c.Request.Context(), tenantKey, ap.ID)
	if err != nil {
		// Already stored; answer with the raw record.
		httpresp.Created(c, ap)
		return
	}
	httpresp.Created(c, view)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	view, err := h.calendar.Get(c.Request.Context(), middleware.TenantKey(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, view)
}

// ======================================================
// UPDATE (status, fields, reschedule)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	tenantKey := middleware.TenantKey(c)

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		TenantKey:  tenantKey,
		ID:         c.Param("id"),
		Status:     req.Status,
		EmployeeID: req.EmployeeID,
		ClientID:   req.ClientID,
		ServiceIDs: req.ServiceIDs,
		Date:       req.Date,
		StartTime:  req.StartTime,
		TotalPrice: req.TotalPrice,
		Paid:       req.Paid,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	view, err := h.calendar.Get(c.Request.Context(), tenantKey, ap.ID)
	if err != nil {
		httpresp.OK(c, ap)
		return
	}
	httpresp.OK(c, view)
}
