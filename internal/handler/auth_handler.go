package handler

import (
	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	user, token, err := h.auth.Register(req)
	if err != nil {
		FromError(c, err)
		return
	}
	Created(c, gin.H{"user": user, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Email and password are required")
		return
	}
	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"user": user, "token": token})
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := CurrentClaims(c)
	if claims != nil {
		if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
			Internal(c)
			return
		}
	}
	Success(c, gin.H{"message": "Logged out"})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.GetUser(UserID(c))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, user)
}

// UpdateProfile PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	user, err := h.auth.UpdateProfile(UserID(c), req)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, user)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UpdatePassword PUT /api/auth/password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Current and new password are required")
		return
	}
	if err := h.auth.UpdatePassword(UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"message": "Password updated"})
}

// ListUsers GET /api/auth/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers()
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, users)
}

// GetUser GET /api/auth/users/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.auth.GetUser(c.Param("id"))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, user)
}

// UpdateUser PUT /api/auth/users/:id
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	user, err := h.auth.UpdateUser(c.Param("id"), req)
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, user)
}

// DeleteUser DELETE /api/auth/users/:id
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.auth.DeleteUser(c.Param("id")); err != nil {
		FromError(c, err)
		return
	}
	Success(c, gin.H{"message": "User deleted"})
}
