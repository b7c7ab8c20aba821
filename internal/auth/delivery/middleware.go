package delivery

import (
	"strings"

	"coffeemap-backend/internal/auth/usecase"
	"coffeemap-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards protected routes. It resolves the bearer token to a
// user ID and attaches it to the request context; on any failure the request
// never reaches the handler.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			_ = c.Error(apperror.New(apperror.Unauthorized, "Authorization required"))
			c.Abort()
			return
		}

		userID, err := authUsecase.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
