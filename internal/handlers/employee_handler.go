package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barbearia-agenda/internal/middleware"
	ucDirectory "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/directory"
)

type EmployeeHandler struct {
	dir *ucDirectory.Directory
}

func NewEmployeeHandler(dir *ucDirectory.Directory) *EmployeeHandler {
	return &EmployeeHandler{dir: dir}
}

type CreateEmployeeRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Specialties []string `json:"specialties"`
}

type UpdateEmployeeRequest struct {
	Name        *string   `json:"name"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Specialties *[]string `json:"specialties"`
}

func (h *EmployeeHandler) List(c *gin.Context) {
	list, err := h.dir.ListEmployees(c.Request.Context(), middleware.TenantKey(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.dir.CreateEmployee(c.Request.Context(), middleware.TenantKey(c), ucDirectory.CreateEmployeeInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Specialties: req.Specialties,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, e)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.dir.UpdateEmployee(c.Request.Context(), middleware.TenantKey(c), c.Param("id"), ucDirectory.UpdateEmployeeInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Specialties: req.Specialties,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, e)
}

func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	if err := h.dir.DeactivateEmployee(c.Request.Context(), middleware.TenantKey(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
