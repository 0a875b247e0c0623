package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barbearia-agenda/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/appointment"
)

type CalendarHandler struct {
	calendar     *ucAppointment.Calendar
	availability *ucAppointment.GetAvailability
}

func NewCalendarHandler(
	calendar *ucAppointment.Calendar,
	availability *ucAppointment.GetAvailability,
) *CalendarHandler {
	return &CalendarHandler{
		calendar:     calendar,
		availability: availability,
	}
}

// Day lists ?date= for ?employee= (optional, "0" or empty means everyone).
func (h *CalendarHandler) Day(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe a data (YYYY-MM-DD).")
		return
	}

	list, err := h.calendar.AppointmentsOnDate(c.Request.Context(), middleware.TenantKey(c), date, c.Query("employee"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

// Counts answers {date: n} for calendar badges, bounded by ?from= and ?to=.
func (h *CalendarHandler) Counts(c *gin.Context) {
	counts, err := h.calendar.CountsByDate(
		c.Request.Context(),
		middleware.TenantKey(c),
		c.Query("employee"),
		c.Query("from"),
		c.Query("to"),
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *CalendarHandler) Upcoming(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	list, err := h.calendar.Upcoming(c.Request.Context(), middleware.TenantKey(c), limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *CalendarHandler) Summary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe a data (YYYY-MM-DD).")
		return
	}

	sum, err := h.calendar.DailySummary(c.Request.Context(), middleware.TenantKey(c), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, sum)
}

// Availability answers the free slots for ?employee=&services=a,b&date=.
func (h *CalendarHandler) Availability(c *gin.Context) {
	employee := c.Query("employee")
	date := c.Query("date")
	if employee == "" || date == "" {
		httperr.BadRequest(c, "missing_params", "Informe profissional e data.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		TenantKey:  middleware.TenantKey(c),
		EmployeeID: employee,
		ServiceIDs: splitCSV(c.Query("services")),
		Date:       date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, slots)
}
