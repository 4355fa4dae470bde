package handlers

import (
	"net/http"

	"salonhub/services/business"
	"salonhub/services/customer"
	"salonhub/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the administrative tables.
type AdminHandler struct {
	Customers  customer.CustomerService
	Businesses business.BusinessService
}

func NewAdminHandler(customers customer.CustomerService, businesses business.BusinessService) *AdminHandler {
	return &AdminHandler{Customers: customers, Businesses: businesses}
}

// ListCustomers handles GET /api/admin/customers.
func (h *AdminHandler) ListCustomers(c *gin.Context) {
	list, err := h.Customers.ListAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "listing failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListBusinesses handles GET /api/admin/salons.
func (h *AdminHandler) ListBusinesses(c *gin.Context) {
	list, err := h.Businesses.ListAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "listing failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, list)
}
