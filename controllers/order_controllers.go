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

type OrderController struct {
	DB       *gorm.DB
	Resolver *services.TransactionResolver
	Checkout *services.CheckoutService
	State    *services.OrderStateMachine
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:       db,
		Resolver: services.NewTransactionResolver(db),
		Checkout: services.NewCheckoutService(db),
		State:    services.NewOrderStateMachine(db),
	}
}

// scopeFor maps the caller onto a resolver scope: customers see their
// own orders, delivery partners the ones assigned to them, admins
// everything.
func scopeFor(userID uint, username, role string) services.Scope {
	switch role {
	case models.RoleAdmin:
		return services.Scope{}
	case models.RoleDelivery:
		return services.ScopeForPartner(username)
	default:
		return services.ScopeForUser(userID)
	}
}

// PlaceOrder turns the caller's cart into a new transaction.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	userID, _, _, err := currentIdentity(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	placed, err := oc.Checkout.PlaceOrder(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrDraftRequired):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.ErrorLogger.Printf("checkout failed for user %d: %v", userID, err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("could not place order"))
		}
		return
	}

	utils.InfoLogger.Printf("Order placed: user=%d reference=%d total=%.2f items=%d",
		userID, placed.ReferenceID, placed.Key.Total, len(placed.Items))

	utils.RespondJSON(c, http.StatusCreated, "Order placed", placed)
}

// ListOrders returns transaction summaries scoped to the caller.
func (oc *OrderController) ListOrders(c *gin.Context) {
	userID, username, role, err := currentIdentity(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	summaries, err := oc.Resolver.ListTransactionSummaries(scopeFor(userID, username, role))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", summaries)
}

// GetOrder expands one transaction from its reference id, scoped to the
// caller. A transaction outside the caller's scope reads as not found.
func (oc *OrderController) GetOrder(c *gin.Context) {
	userID, username, role, err := currentIdentity(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	refID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	key, err := oc.Resolver.ResolveReferenceKey(uint(refID))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	items, err := oc.Resolver.ExpandTransaction(key, scopeFor(userID, username, role))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", gin.H{
		"reference_id":     refID,
		"transaction":      key,
		"items":            items,
		"status":           items[0].Status,
		"delivery_partner": items[0].DeliveryPartner,
	})
}

// UpdateStatus applies a status to the whole transaction. Admins may
// target any order; delivery partners only their own.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	_, username, role, err := currentIdentity(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	refID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	actor := services.Actor{Role: role, Username: username}
	if err := oc.State.SetStatus(uint(refID), req.Status, actor); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrInvalidStatus):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrForbidden):
			utils.RespondError(c, http.StatusForbidden, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.InfoLogger.Printf("Order #%d status updated to %q by %s (%s)",
		refID, req.Status, username, role)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", gin.H{
		"reference_id": refID,
		"status":       req.Status,
	})
}
