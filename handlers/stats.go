package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/models"
	"github.com/Sahil31312/plant-disease-classifier/services"
	"github.com/Sahil31312/plant-disease-classifier/vision"
)

const (
	publicStatsKey = "stats:public"
	adminStatsKey  = "stats:admin"
	statsTTL       = time.Minute
)

type StatsHandler struct {
	db        *gorm.DB
	cache     *services.CacheService
	predictor vision.Predictor
	log       *zap.Logger
}

func NewStatsHandler(db *gorm.DB, cache *services.CacheService, predictor vision.Predictor, log *zap.Logger) *StatsHandler {
	return &StatsHandler{db: db, cache: cache, predictor: predictor, log: log}
}

type PublicStats struct {
	TotalPredictions int64 `json:"total_predictions"`
	HealthyCount     int64 `json:"healthy_count"`
	DiseasedCount    int64 `json:"diseased_count"`
	ModelReady       bool  `json:"model_ready"`
}

// Public serves the landing-page counters, cache-aside with a short TTL.
func (h *StatsHandler) Public(c *gin.Context) {
	var stats PublicStats
	if err := h.cache.Get(c.Request.Context(), publicStatsKey, &stats); err == nil {
		stats.ModelReady = h.predictor.Available()
		c.JSON(http.StatusOK, stats)
		return
	}

	if err := h.db.Model(&models.Prediction{}).Count(&stats.TotalPredictions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load stats"})
		return
	}
	h.db.Model(&models.Prediction{}).Where("is_healthy = ?", true).Count(&stats.HealthyCount)
	stats.DiseasedCount = stats.TotalPredictions - stats.HealthyCount
	stats.ModelReady = h.predictor.Available()

	go func() {
		if err := h.cache.Set(context.Background(), publicStatsKey, stats, statsTTL); err != nil {
			h.log.Warn("stats cache write failed", zap.Error(err))
		}
	}()

	c.JSON(http.StatusOK, stats)
}

type AdminStats struct {
	TotalUsers        int64               `json:"total_users"`
	ActiveUsers       int64               `json:"active_users"`
	TotalPredictions  int64               `json:"total_predictions"`
	PredictionsToday  int64               `json:"predictions_today"`
	UnreadMessages    int64               `json:"unread_messages"`
	AuditEntries      int64               `json:"audit_entries"`
	RecentPredictions []models.Prediction `json:"recent_predictions"`
}

// Admin serves the dashboard counters plus the latest predictions.
func (h *StatsHandler) Admin(c *gin.Context) {
	var stats AdminStats
	if err := h.cache.Get(c.Request.Context(), adminStatsKey, &stats); err == nil {
		c.JSON(http.StatusOK, stats)
		return
	}

	if err := h.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load stats"})
		return
	}
	h.db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.ActiveUsers)
	h.db.Model(&models.Prediction{}).Count(&stats.TotalPredictions)

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	h.db.Model(&models.Prediction{}).Where("created_at >= ?", midnight).Count(&stats.PredictionsToday)

	h.db.Model(&models.ContactMessage{}).Where("status = ?", models.MessageUnread).Count(&stats.UnreadMessages)
	h.db.Model(&models.AuditLog{}).Count(&stats.AuditEntries)
	h.db.Order("created_at DESC").Limit(10).Find(&stats.RecentPredictions)

	go func() {
		if err := h.cache.Set(context.Background(), adminStatsKey, stats, statsTTL); err != nil {
			h.log.Warn("stats cache write failed", zap.Error(err))
		}
	}()

	c.JSON(http.StatusOK, stats)
}
