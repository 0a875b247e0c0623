package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barbearia-agenda/internal/middleware"
	ucDirectory "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/directory"
)

type WorkingHoursHandler struct {
	dir *ucDirectory.Directory
}

func NewWorkingHoursHandler(dir *ucDirectory.Directory) *WorkingHoursHandler {
	return &WorkingHoursHandler{dir: dir}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"weekday"`
	Active     *bool  `json:"active"`
	StartTime  string `json:"start_time" binding:"required,hhmm"`
	EndTime    string `json:"end_time" binding:"required,hhmm"`
	LunchStart string `json:"lunch_start" binding:"omitempty,hhmm"`
	LunchEnd   string `json:"lunch_end" binding:"omitempty,hhmm"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	hours, err := h.dir.GetWorkingHours(c.Request.Context(), middleware.TenantKey(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, hours)
}

// Update replaces the whole week. Days left out are days off; "active"
// defaults to true.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	in := ucDirectory.SetWorkingHoursInput{Days: make([]ucDirectory.WorkingDayInput, 0, len(req.Days))}
	for _, d := range req.Days {
		active := true
		if d.Active != nil {
			active = *d.Active
		}
		in.Days = append(in.Days, ucDirectory.WorkingDayInput{
			Weekday:    d.Weekday,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
			Active:     active,
		})
	}

	hours, err := h.dir.SetWorkingHours(c.Request.Context(), middleware.TenantKey(c), c.Param("id"), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, hours)
}
