package handlers

import (
	"errors"
	"net/http"

	businessRepo "salonhub/database/repository/business"
	"salonhub/models"
	"salonhub/services/business"
	"salonhub/utils"

	"github.com/gin-gonic/gin"
)

// BusinessHandler exposes salon account, catalogue, and availability management.
type BusinessHandler struct {
	Svc business.BusinessService
}

func NewBusinessHandler(svc business.BusinessService) *BusinessHandler {
	return &BusinessHandler{Svc: svc}
}

func writeBusinessError(c *gin.Context, err error) {
	var vErr models.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", vErr.Error())
	case errors.Is(err, businessRepo.ErrBusinessNotFound):
		utils.JSONError(c, http.StatusNotFound, "business not found", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "operation failed", err.Error())
	}
}

// Register handles POST /api/salons/register.
func (h *BusinessHandler) Register(c *gin.Context) {
	var input business.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), input)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Login handles POST /api/salons/login.
func (h *BusinessHandler) Login(c *gin.Context) {
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
		if errors.Is(err, business.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetByID handles GET /api/salons/:id. Public profile view.
func (h *BusinessHandler) GetByID(c *gin.Context) {
	biz, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, biz)
}

// Update handles PUT /api/salons/me.
func (h *BusinessHandler) Update(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Phone       string `json:"phone"`
		Address     string `json:"address"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	biz := &models.Business{
		ID:          c.GetString("businessID"),
		Name:        input.Name,
		Phone:       input.Phone,
		Address:     input.Address,
		Description: input.Description,
	}
	if err := h.Svc.Update(c.Request.Context(), biz); err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": biz.ID})
}

// Delete handles DELETE /api/salons/me.
func (h *BusinessHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("businessID")); err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.GetString("businessID")})
}

// AddService handles POST /api/salons/me/services.
func (h *BusinessHandler) AddService(c *gin.Context) {
	var svc models.SalonService
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.AddService(c.Request.Context(), c.GetString("businessID"), svc)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateService handles PUT /api/salons/me/services/:serviceID.
func (h *BusinessHandler) UpdateService(c *gin.Context) {
	var svc models.SalonService
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	svc.ID = c.Param("serviceID")

	if err := h.Svc.UpdateService(c.Request.Context(), c.GetString("businessID"), svc); err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// RemoveService handles DELETE /api/salons/me/services/:serviceID.
func (h *BusinessHandler) RemoveService(c *gin.Context) {
	if err := h.Svc.RemoveService(c.Request.Context(), c.GetString("businessID"), c.Param("serviceID")); err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": c.Param("serviceID")})
}

// PublishAvailability handles PUT /api/salons/me/availability/:date.
func (h *BusinessHandler) PublishAvailability(c *gin.Context) {
	var input struct {
		Times []string `json:"times" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	date := c.Param("date")
	if err := h.Svc.PublishAvailability(c.Request.Context(), c.GetString("businessID"), date, input.Times); err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "times": len(input.Times)})
}

// UpdateFCMToken handles PUT /api/salons/me/fcm-token.
func (h *BusinessHandler) UpdateFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Svc.UpdateFCMToken(c.Request.Context(), c.GetString("businessID"), input.Token); err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": "fcm_token"})
}

// RevokeToken handles DELETE /api/salons/me/token.
func (h *BusinessHandler) RevokeToken(c *gin.Context) {
	if err := h.Svc.RevokeToken(c.Request.Context(), c.GetString("businessID")); err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": true})
}
