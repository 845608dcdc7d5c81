// File: internal/middleware/error_handler.go
package middleware

import (
	"errors"

	"skillmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrorHandler converts errors attached to the gin context into the standard
// JSON error envelope. It must be registered before any route handlers.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("ErrorHandler")

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			err = common.NewValidationAPIError(common.FormatValidationErrors(validationErrs))
		}

		apiErr, ok := common.IsAPIError(err)
		if !ok {
			log.Error("Unhandled error reached the error middleware",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			apiErr = common.ErrInternalServer
		} else if apiErr.StatusCode >= 500 {
			log.Error("Internal API error",
				zap.String("path", c.Request.URL.Path),
				zap.String("code", apiErr.Code),
				zap.Error(err),
			)
		}

		c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
	}
}
