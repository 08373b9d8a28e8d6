package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/middleware"
	"github.com/Sahil31312/plant-disease-classifier/models"
	"github.com/Sahil31312/plant-disease-classifier/services"
)

type UserHandler struct {
	db    *gorm.DB
	audit *services.AuditService
}

func NewUserHandler(db *gorm.DB, audit *services.AuditService) *UserHandler {
	return &UserHandler{db: db, audit: audit}
}

func (h *UserHandler) AdminList(c *gin.Context) {
	p := ParsePagination(c)

	query := h.db.Order("created_at DESC").Limit(p.Limit + 1)
	if p.Before != nil {
		query = query.Where("created_at < ?", *p.Before)
	}

	var rows []models.User
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load users"})
		return
	}

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}
	resp := CursorResponse{Data: rows, HasMore: hasMore}
	if hasMore && len(rows) > 0 {
		resp.NextCursor = rows[len(rows)-1].CreatedAt.Format(time.RFC3339Nano)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) loadUser(c *gin.Context) (*models.User, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid user id"})
		return nil, false
	}
	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
		return nil, false
	}
	return &user, true
}

func (h *UserHandler) AdminToggleActive(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	identity := middleware.GetIdentity(c)
	if identity.UserID != nil && *identity.UserID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cannot deactivate your own account"})
		return
	}

	newState := !user.Active
	if err := h.db.Model(user).Update("is_active", newState).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update user"})
		return
	}

	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"user.toggle_active", fmt.Sprintf("user %d active=%v", user.ID, newState))
	c.JSON(http.StatusOK, gin.H{"success": true, "is_active": newState})
}

func (h *UserHandler) AdminMakeAdmin(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	if user.IsAdmin() {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "user is already an admin"})
		return
	}

	if err := h.db.Model(user).Update("role", "admin").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update user"})
		return
	}

	identity := middleware.GetIdentity(c)
	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"user.make_admin", fmt.Sprintf("promoted user %d (%s)", user.ID, user.Username))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user promoted to admin"})
}

// AdminDelete removes a user and their predictions. Admin accounts and the
// caller's own account are refused.
func (h *UserHandler) AdminDelete(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	identity := middleware.GetIdentity(c)
	if identity.UserID != nil && *identity.UserID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cannot delete your own account"})
		return
	}
	if user.IsAdmin() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cannot delete an admin account"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Prediction{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete user"})
		return
	}

	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"user.delete", fmt.Sprintf("deleted user %d (%s)", user.ID, user.Username))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user deleted"})
}
