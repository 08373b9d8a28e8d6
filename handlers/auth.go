package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/middleware"
	"github.com/Sahil31312/plant-disease-classifier/models"
	"github.com/Sahil31312/plant-disease-classifier/services"
)

type AuthHandler struct {
	db       *gorm.DB
	auth     *services.AuthService
	sessions *services.SessionService
	audit    *services.AuditService
}

func NewAuthHandler(db *gorm.DB, auth *services.AuthService, sessions *services.SessionService, audit *services.AuditService) *AuthHandler {
	return &AuthHandler{db: db, auth: auth, sessions: sessions, audit: audit}
}

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=80"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token,omitempty"`
	User    models.User `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "passwords do not match"})
		return
	}

	// Distinct messages for the two uniqueness conflicts, checked before the
	// insert so no row is created on refusal.
	var existing models.User
	if err := h.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "username already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "registration failed"})
		return
	}
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "email already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "registration failed"})
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to hash password"})
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		Role:      "user",
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "account already exists"})
		return
	}

	h.audit.Record(c.Request.Context(), &user.ID, c.ClientIP(),
		"user.register", "registered "+user.Username)

	c.JSON(http.StatusCreated, AuthResponse{Success: true, User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}
	if !h.auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}
	if !user.Active {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "account is deactivated"})
		return
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := h.db.Model(&user).Update("last_login", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "login failed"})
		return
	}

	// Carry the visitor's language selection into the authenticated session.
	sid, sess := h.sessions.Load(c)
	sess.UserID = &user.ID
	sess.Username = user.Username
	sess.Role = user.Role
	if _, err := h.sessions.Save(c, sid, sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "login failed"})
		return
	}

	// Bearer token for machine clients and the admin live feed.
	token, err := h.auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to generate token"})
		return
	}

	h.audit.Record(c.Request.Context(), &user.ID, c.ClientIP(),
		"user.login", "logged in "+user.Username)

	c.JSON(http.StatusOK, AuthResponse{Success: true, Token: token, User: user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	h.sessions.Destroy(c, identity.SessionID)

	if identity.Authenticated() {
		h.audit.Record(context.WithoutCancel(c.Request.Context()), identity.UserID,
			c.ClientIP(), "user.logout", "logged out "+identity.Username)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}
