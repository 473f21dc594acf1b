package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

// ErrorMiddleware turns errors collected via c.Error into JSON responses.
// Handlers never write error bodies themselves.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := apperror.ToHTTPStatus(appErr)
			if status >= http.StatusInternalServerError {
				log.Error("request failed", appErr, zap.String("path", c.FullPath()), zap.String("method", c.Request.Method))
			}
			c.JSON(status, appErr.ToJSON())
			return
		}

		log.Error("unhandled error", err, zap.String("path", c.FullPath()), zap.String("method", c.Request.Method))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
