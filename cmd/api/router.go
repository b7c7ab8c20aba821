package api

import (
	authDelivery "coffeemap-backend/internal/auth/delivery"
	authUsecase "coffeemap-backend/internal/auth/usecase"
	shopDelivery "coffeemap-backend/internal/coffeeshop/delivery"
	shopUsecase "coffeemap-backend/internal/coffeeshop/usecase"
	"coffeemap-backend/pkg/apperror"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, shopUc shopUsecase.CoffeeShopUsecase) {
	authHandler := authDelivery.NewAuthHandler(authUc)
	shopHandler := shopDelivery.NewCoffeeShopHandler(shopUc)

	// Health check (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	r.POST("/signup", authHandler.Signup)
	r.POST("/signin", authHandler.Signin)

	// Account routes (protected)
	users := r.Group("/users")
	users.Use(authDelivery.AuthMiddleware(authUc))
	{
		users.GET("/me", authHandler.Me)
		users.PATCH("/me", authHandler.UpdateMe)
	}

	// Coffee shop routes (protected)
	shops := r.Group("/coffee-shops")
	shops.Use(authDelivery.AuthMiddleware(authUc))
	{
		shops.GET("", shopHandler.GetCoffeeShops)
		shops.POST("", shopHandler.CreateCoffeeShop)
		shops.DELETE("/:id", shopHandler.DeleteCoffeeShop)
	}

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.New(apperror.NotFound, "The requested resource was not found"))
	})
}
