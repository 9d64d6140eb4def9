package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clima-be/internal/apperrors"
	"clima-be/internal/logging"
)

// ErrorResponse is the JSON envelope for every error raised through c.Error.
type ErrorResponse struct {
	Status    int               `json:"status"`
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Path      string            `json:"path"`
	Method    string            `json:"method"`
	Timestamp string            `json:"timestamp"`
	Details   apperrors.Details `json:"details,omitempty"`
}

// ErrorHandler renders the last error queued by a handler. In production,
// messages and details of unexposed errors are replaced with a generic one.
func ErrorHandler(logger logging.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := apperrors.Normalize(c.Errors.Last().Err)
		ctx := c.Request.Context()
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error(ctx, "request failed",
				"status", httpErr.Status,
				"path", c.Request.URL.Path,
				"error", c.Errors.Last().Err,
			)
		} else {
			logger.Debug(ctx, "request rejected",
				"status", httpErr.Status,
				"path", c.Request.URL.Path,
				"error", c.Errors.Last().Err,
			)
		}

		resp := ErrorResponse{
			Status:    httpErr.Status,
			Code:      httpErr.Code,
			Message:   httpErr.Message,
			Path:      c.Request.URL.Path,
			Method:    c.Request.Method,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Details:   httpErr.Details,
		}
		if production && !httpErr.Expose {
			resp.Message = apperrors.MsgInternal
			resp.Details = nil
		}

		c.AbortWithStatusJSON(httpErr.Status, resp)
	}
}

// NotFound answers unknown routes through the error envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperrors.NotFound(apperrors.MsgRouteNotFound))
	}
}
