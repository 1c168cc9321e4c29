package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoteleats/order-backend/utils"
)

// Ping is the liveness probe. It pulls the shared handle from utils so
// it also proves the database is still reachable, not just the process.
func Ping(c *gin.Context) {
	db := utils.GetDB()
	if db == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("database not initialized"))
		return
	}

	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("database unreachable"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "pong", nil)
}
