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

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllDishes lists the catalog for browsing customers.
func (mc *MenuController) GetAllDishes(c *gin.Context) {
	var dishes []models.Dish
	if err := mc.DB.Order("name ASC").Find(&dishes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of dishes", dishes)
}

// AddDish creates a catalog entry. Admin only (enforced by the route
// group). Price arrives as a string so a malformed value gets the
// retry-the-form treatment instead of a binding failure.
func (mc *MenuController) AddDish(c *gin.Context) {
	type request struct {
		Name        string `json:"name" binding:"required"`
		Price       string `json:"price" binding:"required"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil || price < 0 {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidPrice)
		return
	}

	image := req.Image
	if image == "" {
		image = "default.png"
	}

	dish := models.Dish{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       image,
	}
	if err := mc.DB.Create(&dish).Error; err != nil {
		// storage errors surface verbatim on the admin side
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Dish '%s' added by admin", dish.Name)
	utils.RespondJSON(c, http.StatusCreated, "Dish added successfully", dish)
}

// DeleteDish removes a catalog entry.
func (mc *MenuController) DeleteDish(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("dish_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid dish id"))
		return
	}

	res := mc.DB.Delete(&models.Dish{}, id)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, services.ErrDishNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dish deleted successfully", gin.H{"dish_id": id})
}
