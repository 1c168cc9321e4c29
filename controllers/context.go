package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// currentIdentity pulls the authenticated caller out of the gin context
// (set by AuthMiddleware).
func currentIdentity(c *gin.Context) (userID uint, username, role string, err error) {
	idVal, ok := c.Get("user_id")
	if !ok {
		return 0, "", "", errors.New("user id not found in context")
	}
	userID, ok = idVal.(uint)
	if !ok {
		return 0, "", "", errors.New("invalid user id type")
	}
	if v, ok := c.Get("username"); ok {
		username, _ = v.(string)
	}
	if v, ok := c.Get("role"); ok {
		role, _ = v.(string)
	}
	return userID, username, role, nil
}
