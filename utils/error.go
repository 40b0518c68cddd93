package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.Int("status", status), zap.String("details", details))
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Details: details})
}

// RespondError writes err using its AppError kind. Server-side failures are
// logged with their cause and answered with a generic message.
func RespondError(c *gin.Context, err error) {
	kind := KindOf(err)
	status := kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		GetLogger().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		msg := "Server error"
		if kind == KindUnavailable {
			msg = PublicMessage(err)
		}
		c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: PublicMessage(err)})
}
