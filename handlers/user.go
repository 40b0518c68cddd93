package handlers

import (
	"net/http"

	"unisched/middleware"
	"unisched/models"
	"unisched/services/user"
	"unisched/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	UserService user.UserService
}

// RegisterHandler handles POST /api/users/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req models.UserRegistration
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.UserService.Register(c.Request.Context(), req); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "User registered"})
}

// LoginHandler handles POST /api/users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.UserLogin
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.UserService.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// MeHandler handles GET /api/users/user.
func (h *UserHandler) MeHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	u, err := h.UserService.Me(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// LogoutHandler handles POST /api/users/logout.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.UserService.Logout(c.Request.Context(), id, middleware.CurrentToken(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Logged out"})
}
