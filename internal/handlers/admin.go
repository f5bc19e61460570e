package handlers

import (
	"github.com/gin-gonic/gin"

	"shopstack-products/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// DashboardKPI godoc
// @Summary Dashboard KPIs
// @Description Asset value, stock and status breakdowns over the whole catalog
// @Tags Admin
// @Produce json
// @Success 200 {object} handlers.Response
// @Router /admin/kpi [get]
func (h *AdminHandler) DashboardKPI(c *gin.Context) {
	kpi, err := h.adminService.DashboardKPI(c)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Dashboard fetched.", kpi)
}

// ListProducts godoc
// @Summary Admin product table
// @Description Uncached summary listing; empty pages are valid
// @Tags Admin
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} handlers.Response
// @Router /admin/products [get]
func (h *AdminHandler) ListProducts(c *gin.Context) {
	req := parseSearchRequest(c)
	listing, err := h.adminService.ListProducts(c, req)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, "Products fetched.", listing)
}
