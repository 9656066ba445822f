package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "fundit/internal/errors"
	"fundit/internal/logger"
)

// ErrorBody builds the JSON error envelope for err. Unexpected errors are
// logged and reported as a generic internal error to avoid leaking details.
func ErrorBody(c *gin.Context, err error) (int, gin.H) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"message", appErr.Message,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
				"request_id", RequestID(c),
			)
		}
		detail := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Fields) > 0 {
			detail["fields"] = appErr.Fields
		}
		return appErr.StatusCode, gin.H{"error": detail}
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", RequestID(c),
	)
	return apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	}
}

func abortWithError(c *gin.Context, err error) {
	status, body := ErrorBody(c, err)
	c.AbortWithStatusJSON(status, body)
}

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		status, body := ErrorBody(c, c.Errors.Last().Err)
		c.JSON(status, body)
	}
}
