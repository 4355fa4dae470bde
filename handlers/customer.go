package handlers

import (
	"errors"
	"net/http"

	customerRepo "salonhub/database/repository/customer"
	"salonhub/models"
	"salonhub/services/customer"
	"salonhub/utils"

	"github.com/gin-gonic/gin"
)

// CustomerHandler exposes customer account management.
type CustomerHandler struct {
	Svc customer.CustomerService
}

func NewCustomerHandler(svc customer.CustomerService) *CustomerHandler {
	return &CustomerHandler{Svc: svc}
}

// Register handles POST /api/customers/register.
func (h *CustomerHandler) Register(c *gin.Context) {
	var input customer.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Login handles POST /api/customers/login.
func (h *CustomerHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Svc.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, customer.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "login failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

// Me handles GET /api/customers/me.
func (h *CustomerHandler) Me(c *gin.Context) {
	cust, err := h.Svc.GetByID(c.Request.Context(), c.GetString("customerID"))
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			utils.JSONError(c, http.StatusNotFound, "customer not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "fetch failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, cust)
}

// Update handles PUT /api/customers/me.
func (h *CustomerHandler) Update(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	cust := &models.Customer{
		ID:    c.GetString("customerID"),
		Name:  input.Name,
		Phone: input.Phone,
	}
	if err := h.Svc.Update(c.Request.Context(), cust); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": cust.ID})
}

// Delete handles DELETE /api/customers/me.
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("customerID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "delete failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.GetString("customerID")})
}

// UpdateFCMToken handles PUT /api/customers/me/fcm-token.
func (h *CustomerHandler) UpdateFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Svc.UpdateFCMToken(c.Request.Context(), c.GetString("customerID"), input.Token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": "fcm_token"})
}

// RevokeToken handles DELETE /api/customers/me/token.
func (h *CustomerHandler) RevokeToken(c *gin.Context) {
	if err := h.Svc.RevokeToken(c.Request.Context(), c.GetString("customerID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "revoke failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": true})
}
