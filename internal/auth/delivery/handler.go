package delivery

import (
	"net/http"

	authdto "coffeemap-backend/internal/auth/dto"
	"coffeemap-backend/internal/auth/usecase"
	"coffeemap-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles account HTTP requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Signup registers a new account
// POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Wrap(apperror.BadRequest, "Invalid input data", err))
		return
	}

	resp, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Signin authenticates an existing account
// POST /signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Wrap(apperror.BadRequest, "Email and password are required", err))
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated account
// GET /users/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.authUsecase.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, authdto.UserResponse{User: user})
}

// UpdateMe updates the authenticated account's profile
// PATCH /users/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID := c.GetString("userID")

	var req authdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Wrap(apperror.BadRequest, "Invalid input data", err))
		return
	}

	user, err := h.authUsecase.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, authdto.UserResponse{User: user})
}
