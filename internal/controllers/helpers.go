package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"clima-be/internal/apperrors"
	"clima-be/internal/middleware"
)

const msgInvalidID = "ID inválido"

// bindJSON decodes and validates the body. Failures are queued for the
// error handler as 400s.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperrors.Binding(err))
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		_ = c.Error(apperrors.BadRequest(msgInvalidID, apperrors.Details{"param": param}))
		return 0, false
	}
	return uint(id), true
}

// currentUserID returns the authenticated user, or 0 on public routes.
func currentUserID(c *gin.Context) uint {
	id, _ := c.Get(middleware.ContextUserID)
	userID, _ := id.(uint)
	return userID
}
