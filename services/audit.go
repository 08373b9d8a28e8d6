package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/models"
)

// AuditService appends action entries after their primary operation has
// committed. An audit failure is logged but never fails the request.
type AuditService struct {
	db    *gorm.DB
	cache *CacheService
	log   *zap.Logger
}

func NewAuditService(db *gorm.DB, cache *CacheService, log *zap.Logger) *AuditService {
	return &AuditService{db: db, cache: cache, log: log}
}

func (s *AuditService) Record(ctx context.Context, userID *uint, ip, action, details string) {
	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ip,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Error("audit write failed",
			zap.String("action", action),
			zap.Error(err),
		)
		return
	}

	if s.cache != nil {
		if err := s.cache.Publish(ctx, ActivityChannel, entry); err != nil {
			s.log.Warn("activity publish failed", zap.Error(err))
		}
	}
}
