package handlers

import (
	"net/http"

	"unisched/middleware"
	"unisched/models"
	"unisched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request logger set by middleware.RequestLogger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// identity fetches the caller or answers 401.
func identity(c *gin.Context) (models.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return models.Identity{}, false
	}
	return id, true
}

// bindJSON binds and validates the request body or answers 400.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("invalid request body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", utils.ValidationMessage(err))
		return false
	}
	return true
}
