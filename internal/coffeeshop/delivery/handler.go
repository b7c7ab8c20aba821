package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"coffeemap-backend/internal/coffeeshop/dto"
	"coffeemap-backend/internal/coffeeshop/usecase"
	"coffeemap-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// CoffeeShopHandler handles coffee shop HTTP requests
type CoffeeShopHandler struct {
	shopUsecase usecase.CoffeeShopUsecase
}

// NewCoffeeShopHandler creates a new CoffeeShopHandler
func NewCoffeeShopHandler(shopUsecase usecase.CoffeeShopUsecase) *CoffeeShopHandler {
	return &CoffeeShopHandler{
		shopUsecase: shopUsecase,
	}
}

// GetCoffeeShops returns all coffee shops owned by the authenticated user
// GET /coffee-shops
func (h *CoffeeShopHandler) GetCoffeeShops(c *gin.Context) {
	userID := c.GetString("userID")

	shops, err := h.shopUsecase.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, shops)
}

// CreateCoffeeShop creates a new coffee shop owned by the authenticated user
// POST /coffee-shops
func (h *CoffeeShopHandler) CreateCoffeeShop(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreateCoffeeShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			_ = c.Error(apperror.Wrap(apperror.BadRequest, "Invalid data format", err))
		} else {
			_ = c.Error(apperror.Wrap(apperror.BadRequest, "Name, latitude, and longitude are required", err))
		}
		return
	}

	shop, err := h.shopUsecase.Create(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, shop)
}

// DeleteCoffeeShop deletes a coffee shop owned by the authenticated user
// DELETE /coffee-shops/:id
func (h *CoffeeShopHandler) DeleteCoffeeShop(c *gin.Context) {
	userID := c.GetString("userID")
	shopID := c.Param("id")

	if err := h.shopUsecase.Delete(c.Request.Context(), userID, shopID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coffee shop deleted successfully"})
}
