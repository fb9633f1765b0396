package middleware

import (
	"errors"
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// MsgUnexpected is sent for errors that are not an *apperror.AppError
const MsgUnexpected = apperror.MsgInternal

// ErrorHandler renders the last error attached with c.Error once the chain returns.
// Anything that is not an *apperror.AppError becomes a 500 without details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		reqID := c.GetString("RequestID")

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("request failed", "request_id", reqID, "path", c.FullPath(), "status", appErr.Code, "error", appErr.Err)
		}
		response.Error(c, appErr.Code, appErr.Message, appErr.Fields)
	}
}
