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

type CartController struct {
	DB       *gorm.DB
	Checkout *services.CheckoutService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{
		DB:       db,
		Checkout: services.NewCheckoutService(db),
	}
}

// AddToCart puts one unit of a dish in the caller's cart, bumping the
// quantity if the dish is already there.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, _, _, err := currentIdentity(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	dishID, err := strconv.Atoi(c.Param("dish_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid dish id"))
		return
	}

	var dish models.Dish
	if err := cc.DB.First(&dish, dishID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrDishNotFound)
		return
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		err := tx.Where("user_id = ? AND dish_id = ?", userID, dishID).First(&item).Error
		switch {
		case err == nil:
			return tx.Model(&item).Update("quantity", gorm.Expr("quantity + ?", 1)).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.CartItem{
				UserID:   userID,
				DishID:   uint(dishID),
				Quantity: 1,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item added to cart", nil)
}

// GetCart returns the priced cart contents.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, _, _, err := currentIdentity(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	items, total, err := cc.Checkout.PreviewCart(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
		"items": items,
		"total": total,
	})
}

// RemoveFromCart drops a dish from the cart entirely.
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	userID, _, _, err := currentIdentity(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	dishID, err := strconv.Atoi(c.Param("dish_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid dish id"))
		return
	}

	res := cc.DB.Where("user_id = ? AND dish_id = ?", userID, dishID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("item not in cart"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", nil)
}

// SaveDetails upserts the caller's delivery details. Checkout refuses
// to run until these exist.
func (cc *CartController) SaveDetails(c *gin.Context) {
	userID, _, _, err := currentIdentity(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	type request struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address" binding:"required"`
		Phone   string `json:"phone" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		var draft models.CheckoutDraft
		err := tx.Where("user_id = ?", userID).First(&draft).Error
		switch {
		case err == nil:
			draft.Name = req.Name
			draft.Address = req.Address
			draft.Phone = req.Phone
			return tx.Save(&draft).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.CheckoutDraft{
				UserID:  userID,
				Name:    req.Name,
				Address: req.Address,
				Phone:   req.Phone,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Delivery details saved", nil)
}

// GetDetails returns the caller's saved delivery details, if any.
func (cc *CartController) GetDetails(c *gin.Context) {
	userID, _, _, err := currentIdentity(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var draft models.CheckoutDraft
	if err := cc.DB.Where("user_id = ?", userID).First(&draft).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, services.ErrDraftRequired)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Delivery details", draft)
}

// CheckoutPreview shows the priced cart the way the checkout page does,
// without placing anything.
func (cc *CartController) CheckoutPreview(c *gin.Context) {
	userID, _, _, err := currentIdentity(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var draft models.CheckoutDraft
	if err := cc.DB.Where("user_id = ?", userID).First(&draft).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrDraftRequired)
		return
	}

	items, total, err := cc.Checkout.PreviewCart(userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Checkout preview", gin.H{
		"items":   items,
		"total":   total,
		"details": draft,
	})
}
