package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barbearia-agenda/internal/middleware"
	ucDirectory "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/directory"
)

type ServiceHandler struct {
	dir *ucDirectory.Directory
}

func NewServiceHandler(dir *ucDirectory.Directory) *ServiceHandler {
	return &ServiceHandler{dir: dir}
}

// Price accepts a JSON number or string ("35.00").
type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	DurationMin *int             `json:"duration_min"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	list, err := h.dir.ListServices(c.Request.Context(), middleware.TenantKey(c), c.Query("category"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.dir.CreateService(c.Request.Context(), middleware.TenantKey(c), ucDirectory.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.dir.UpdateService(c.Request.Context(), middleware.TenantKey(c), c.Param("id"), ucDirectory.UpdateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *ServiceHandler) Deactivate(c *gin.Context) {
	if err := h.dir.DeactivateService(c.Request.Context(), middleware.TenantKey(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
