package api

import (
	authUsecase "coffeemap-backend/internal/auth/usecase"
	shopUsecase "coffeemap-backend/internal/coffeeshop/usecase"
	"coffeemap-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	shopUsecase shopUsecase.CoffeeShopUsecase
	config      *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, shopUc shopUsecase.CoffeeShopUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase: authUc,
		shopUsecase: shopUc,
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	if h.config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.Use(ErrorFormatter(h.config.AppEnv))

	SetupRoutes(r, h.authUsecase, h.shopUsecase)

	return r.Run(addr)
}
