package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barbearia-agenda/internal/middleware"
	ucDirectory "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/directory"
)

type ClientHandler struct {
	dir *ucDirectory.Directory
}

func NewClientHandler(dir *ucDirectory.Directory) *ClientHandler {
	return &ClientHandler{dir: dir}
}

type CreateClientRequest struct {
	Name      string  `json:"name" binding:"required"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	BirthDate *string `json:"birth_date" binding:"omitempty,isodate"`
}

type UpdateClientRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	BirthDate *string `json:"birth_date" binding:"omitempty,isodate"`
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))

	list, err := h.dir.ListClients(c.Request.Context(), middleware.TenantKey(c), query)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	cl, err := h.dir.CreateClient(c.Request.Context(), middleware.TenantKey(c), ucDirectory.CreateClientInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, cl)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	cl, err := h.dir.UpdateClient(c.Request.Context(), middleware.TenantKey(c), c.Param("id"), ucDirectory.UpdateClientInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, cl)
}

func (h *ClientHandler) Deactivate(c *gin.Context) {
	if err := h.dir.DeactivateClient(c.Request.Context(), middleware.TenantKey(c), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.NoContent(c)
}
