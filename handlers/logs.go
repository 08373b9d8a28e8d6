package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/config"
	"github.com/Sahil31312/plant-disease-classifier/middleware"
	"github.com/Sahil31312/plant-disease-classifier/models"
	"github.com/Sahil31312/plant-disease-classifier/services"
)

type LogHandler struct {
	db        *gorm.DB
	sweeper   *services.Sweeper
	audit     *services.AuditService
	retention config.RetentionConfig
}

func NewLogHandler(db *gorm.DB, sweeper *services.Sweeper, audit *services.AuditService, retention config.RetentionConfig) *LogHandler {
	return &LogHandler{db: db, sweeper: sweeper, audit: audit, retention: retention}
}

func (h *LogHandler) AdminList(c *gin.Context) {
	p := ParsePagination(c)

	query := h.db.Order("created_at DESC").Limit(p.Limit + 1)
	if p.Before != nil {
		query = query.Where("created_at < ?", *p.Before)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}

	var rows []models.AuditLog
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load logs"})
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

// AdminDeleteOld purges entries older than the retention window, same
// predicate the scheduled sweep uses.
func (h *LogHandler) AdminDeleteOld(c *gin.Context) {
	cutoff := time.Now().UTC().Add(-time.Duration(h.retention.MaxAgeDays) * 24 * time.Hour)
	deleted, err := h.sweeper.DeleteOlderThan(cutoff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete logs"})
		return
	}

	identity := middleware.GetIdentity(c)
	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"logs.delete_old", fmt.Sprintf("deleted %d entries older than %d days", deleted, h.retention.MaxAgeDays))
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

func (h *LogHandler) AdminDeleteAll(c *gin.Context) {
	deleted, err := h.sweeper.DeleteAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete logs"})
		return
	}

	identity := middleware.GetIdentity(c)
	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"logs.delete_all", fmt.Sprintf("deleted all %d entries", deleted))
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}
