package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hoteleats/order-backend/models"
	"github.com/hoteleats/order-backend/services"
	"github.com/hoteleats/order-backend/utils"
)

type AdminController struct {
	DB    *gorm.DB
	State *services.OrderStateMachine
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{
		DB:    db,
		State: services.NewOrderStateMachine(db),
	}
}

// ListPartners returns the delivery partner usernames the assignment
// form offers.
func (ac *AdminController) ListPartners(c *gin.Context) {
	var partners []struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	if err := ac.DB.Model(&models.User{}).
		Select("id, username").
		Where("role = ?", models.RoleDelivery).
		Scan(&partners).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Delivery partners", partners)
}

// AssignDelivery hands an order to a delivery partner and resets its
// status to preparing.
func (ac *AdminController) AssignDelivery(c *gin.Context) {
	refID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		DeliveryUser string `json:"delivery_user" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ac.State.Assign(uint(refID), req.DeliveryUser); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrPartnerNotFound):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.InfoLogger.Printf("Order #%d assigned to %s", refID, req.DeliveryUser)

	utils.RespondJSON(c, http.StatusOK, "Order assigned", gin.H{
		"reference_id":     refID,
		"delivery_partner": req.DeliveryUser,
		"status":           models.StatusPreparing,
	})
}
