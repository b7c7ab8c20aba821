package api

import (
	"log"

	"coffeemap-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorFormatter is the single place error responses are written. Handlers
// and middleware record typed errors on the context and return; anything
// untyped that reaches this point renders as an opaque internal error.
func ErrorFormatter(appEnv string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperror.Classify(c.Errors.Last().Err)

		errBody := gin.H{"message": appErr.Message}
		if appErr.Kind == apperror.Internal {
			log.Printf("internal error: %v", appErr)
			// Diagnostic detail rides in a side channel; the message
			// stays generic in every environment.
			if appEnv != "production" && appErr.Stack != "" {
				errBody["stack"] = appErr.Stack
			}
		}

		c.JSON(appErr.Kind.Status(), gin.H{"error": errBody})
	}
}
