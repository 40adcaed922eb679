package handlers

import (
	"net/http"

	"gigwork_backend/internal/middleware"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	limiter     *middleware.RateLimiter
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, limiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		limiter:     limiter,
	}
}

// RegisterRoutes регистрирует маршруты /auth
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Публичные, под rate limit
		public := auth.Group("", h.limiter.Handler())
		public.POST("/signup", h.Signup)
		public.POST("/signup/external", h.SignupExternal)
		public.POST("/login", h.Login)
		public.POST("/login/external", h.LoginExternal)

		private := auth.Group("", h.RequireAuth())
		private.POST("/logout", h.Logout)
		private.GET("/me", h.Me)
		private.PUT("/me/currency", h.UpdateCurrency)
	}
}

// Signup - анкета + квиз. Аккаунт создается только при проходном балле.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Signup(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) SignupExternal(c *gin.Context) {
	var req dto.ExternalSignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.SignupExternal(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) LoginExternal(c *gin.Context) {
	var req dto.ExternalLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.LoginExternal(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(h.GetDB(c), sess.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully logged out",
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	resp, err := h.authService.Me(h.GetDB(c), sess.UserID())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) UpdateCurrency(c *gin.Context) {
	sess, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var req dto.UpdateCurrencyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.UpdateCurrency(h.GetDB(c), sess.UserID(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
