package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// UnexpectedErrorMessage is the body message of a recovered panic.
const UnexpectedErrorMessage = "An unexpected error occurred"

// ErrorHandler middleware recovers from any panics and handles errors
func ErrorHandler(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"error", err,
					"stack", string(debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"status":  "error",
					"message": UnexpectedErrorMessage,
				})
			}
		}()

		c.Next()
	}
}
