package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/i18n"
	"github.com/Sahil31312/plant-disease-classifier/middleware"
	"github.com/Sahil31312/plant-disease-classifier/models"
	"github.com/Sahil31312/plant-disease-classifier/services"
)

type MessageHandler struct {
	db    *gorm.DB
	audit *services.AuditService
}

func NewMessageHandler(db *gorm.DB, audit *services.AuditService) *MessageHandler {
	return &MessageHandler{db: db, audit: audit}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required"`
}

// Contact stores a visitor message. Open to anonymous callers.
func (h *MessageHandler) Contact(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	lang := i18n.Normalize(identity.Language)

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": i18n.T(lang)["all_fields_required"]})
		return
	}

	msg := models.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Language:  lang,
		Status:    models.MessageUnread,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.db.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": i18n.T(lang)["message_error"]})
		return
	}

	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"message.create", fmt.Sprintf("contact message %d from %s", msg.ID, req.Email))
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": i18n.T(lang)["message_sent"]})
}

func (h *MessageHandler) AdminList(c *gin.Context) {
	p := ParsePagination(c)

	query := h.db.Order("created_at DESC").Limit(p.Limit + 1)
	if p.Before != nil {
		query = query.Where("created_at < ?", *p.Before)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.ContactMessage
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load messages"})
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

func (h *MessageHandler) loadMessage(c *gin.Context) (*models.ContactMessage, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid message id"})
		return nil, false
	}
	var msg models.ContactMessage
	if err := h.db.First(&msg, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "message not found"})
		return nil, false
	}
	return &msg, true
}

func (h *MessageHandler) transition(c *gin.Context, next, action string) {
	msg, ok := h.loadMessage(c)
	if !ok {
		return
	}
	if !msg.CanTransition(next) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": fmt.Sprintf("cannot mark %s message as %s", msg.Status, next),
		})
		return
	}
	if err := h.db.Model(msg).Update("status", next).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update message"})
		return
	}

	identity := middleware.GetIdentity(c)
	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		action, fmt.Sprintf("message %d -> %s", msg.ID, next))
	c.JSON(http.StatusOK, gin.H{"success": true, "status": next})
}

func (h *MessageHandler) AdminMarkRead(c *gin.Context) {
	h.transition(c, models.MessageRead, "message.read")
}

func (h *MessageHandler) AdminMarkReplied(c *gin.Context) {
	h.transition(c, models.MessageReplied, "message.reply")
}

func (h *MessageHandler) AdminDelete(c *gin.Context) {
	msg, ok := h.loadMessage(c)
	if !ok {
		return
	}
	if err := h.db.Delete(msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete message"})
		return
	}

	identity := middleware.GetIdentity(c)
	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"message.delete", fmt.Sprintf("deleted message %d", msg.ID))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "message deleted"})
}
