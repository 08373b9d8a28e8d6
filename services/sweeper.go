package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/config"
	"github.com/Sahil31312/plant-disease-classifier/models"
)

// Sweeper deletes audit log entries older than the retention window. It
// polls hourly but only sweeps when the persisted watermark says a full
// sweep interval has passed, so restarts neither double-fire nor skip.
type Sweeper struct {
	db     *gorm.DB
	audit  *AuditService
	log    *zap.Logger
	maxAge time.Duration
	every  time.Duration
	cron   *cron.Cron
}

func NewSweeper(db *gorm.DB, audit *AuditService, log *zap.Logger, cfg config.RetentionConfig) *Sweeper {
	return &Sweeper{
		db:     db,
		audit:  audit,
		log:    log,
		maxAge: time.Duration(cfg.MaxAgeDays) * 24 * time.Hour,
		every:  time.Duration(cfg.SweepEveryHrs) * time.Hour,
	}
}

// Start runs one due-check immediately, then every hour.
func (s *Sweeper) Start() {
	s.cron = cron.New()
	s.cron.AddFunc("@hourly", func() {
		if _, err := s.SweepIfDue(time.Now().UTC()); err != nil {
			s.log.Error("retention sweep failed", zap.Error(err))
		}
	})
	s.cron.Start()

	go func() {
		if _, err := s.SweepIfDue(time.Now().UTC()); err != nil {
			s.log.Error("retention sweep failed", zap.Error(err))
		}
	}()
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SweepIfDue consults the watermark and sweeps only when a full interval
// has passed since the last recorded sweep. Reports whether it swept.
func (s *Sweeper) SweepIfDue(now time.Time) (bool, error) {
	var state models.RetentionState
	err := s.db.First(&state, 1).Error
	if err == gorm.ErrRecordNotFound {
		state = models.RetentionState{ID: 1}
		if err := s.db.Create(&state).Error; err != nil {
			return false, err
		}
	} else if err != nil {
		return false, err
	}

	if !state.LastSweptAt.IsZero() && now.Sub(state.LastSweptAt) < s.every {
		return false, nil
	}

	deleted, err := s.DeleteOlderThan(now.Add(-s.maxAge))
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		s.log.Info("retention sweep removed entries", zap.Int64("count", deleted))
		if s.audit != nil {
			s.audit.Record(context.Background(), nil, "",
				"logs.retention_sweep",
				fmt.Sprintf("removed %d audit entries older than %d days",
					deleted, int(s.maxAge.Hours()/24)),
			)
		}
	}

	state.LastSweptAt = now
	if err := s.db.Save(&state).Error; err != nil {
		return true, err
	}
	return true, nil
}

// DeleteOlderThan removes audit entries created before the cutoff. The
// manual admin purge reuses this with its own cutoff.
func (s *Sweeper) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.
		Where("created_at < ?", cutoff).
		Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}

// DeleteAll empties the audit log entirely.
func (s *Sweeper) DeleteAll() (int64, error) {
	result := s.db.
		Where("1 = 1").
		Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}
