package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

type TenantHandler struct {
	tenantService services.TenantService
}

func NewTenantHandler(tenantService services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// GET /tenant
func (th *TenantHandler) Get(c *gin.Context) {
	tenant, err := th.tenantService.Get(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tenant": tenant})
}

// PATCH /tenant
func (th *TenantHandler) Update(c *gin.Context) {
	var req services.UpdateTenantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tenant, err := th.tenantService.Update(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tenant": tenant})
}

// DELETE /tenant
func (th *TenantHandler) Deactivate(c *gin.Context) {
	if err := th.tenantService.Deactivate(c.Request.Context()); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
