package middleware

import (
	"errors"
	"net/http"

	"go-ats-core/internal/delivery/http/response"
	"go-ats-core/internal/domain"
	"go-ats-core/pkg/apperror"
	"go-ats-core/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else if errors.Is(err, domain.ErrNotFound) {
				// Repositories surface this when a row vanished between
				// the usecase's read and its write.
				response.Error(c, http.StatusNotFound, "Resource not found", nil)
			} else {
				// Never expose internal error details to clients. Log the
				// actual error server-side and send a generic message.
				logger.Log.Error("Internal server error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
