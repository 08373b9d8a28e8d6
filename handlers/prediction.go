package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/config"
	"github.com/Sahil31312/plant-disease-classifier/i18n"
	"github.com/Sahil31312/plant-disease-classifier/middleware"
	"github.com/Sahil31312/plant-disease-classifier/models"
	"github.com/Sahil31312/plant-disease-classifier/services"
	"github.com/Sahil31312/plant-disease-classifier/vision"
)

// allowedExtensions is the upload whitelist; anything else is refused
// before the body is touched.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
}

type PredictionHandler struct {
	db         *gorm.DB
	normalizer *vision.Normalizer
	predictor  vision.Predictor
	recorder   *services.Recorder
	composer   *services.Composer
	audit      *services.AuditService
	upload     config.UploadConfig
	timeout    time.Duration
	log        *zap.Logger
}

func NewPredictionHandler(
	db *gorm.DB,
	normalizer *vision.Normalizer,
	predictor vision.Predictor,
	recorder *services.Recorder,
	composer *services.Composer,
	audit *services.AuditService,
	uploadCfg config.UploadConfig,
	modelCfg config.ModelConfig,
	log *zap.Logger,
) *PredictionHandler {
	return &PredictionHandler{
		db:         db,
		normalizer: normalizer,
		predictor:  predictor,
		recorder:   recorder,
		composer:   composer,
		audit:      audit,
		upload:     uploadCfg,
		timeout:    time.Duration(modelCfg.TimeoutSeconds) * time.Second,
		log:        log,
	}
}

// sanitizeFilename strips path components and anything outside a safe
// character set from a client-supplied name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}

func (h *PredictionHandler) infer(ctx context.Context, tensor *vision.Tensor) ([]float32, int, string) {
	inferCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	probs, err := h.predictor.Predict(inferCtx, tensor)
	switch {
	case err == nil:
		return probs, 0, ""
	case errors.Is(err, vision.ErrModelUnavailable):
		return nil, http.StatusServiceUnavailable, "model is not available"
	case errors.Is(err, vision.ErrInferenceTimeout):
		return nil, http.StatusGatewayTimeout, "inference timed out"
	default:
		h.log.Error("inference failed", zap.Error(err))
		return nil, http.StatusInternalServerError, "inference failed"
	}
}

// Predict is the browser flow: saves the upload, runs the full pipeline
// and returns the composed bilingual result.
func (h *PredictionHandler) Predict(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	lang := i18n.Normalize(identity.Language)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": i18n.T(lang)["no_file"]})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": i18n.T(lang)["invalid_file_type"]})
		return
	}
	if file.Size > h.upload.MaxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": i18n.T(lang)["file_too_large"]})
		return
	}

	storedName := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(file.Filename))
	dst := filepath.Join(h.upload.Dir, storedName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.log.Error("upload save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to save upload"})
		return
	}

	tensor, err := h.normalizer.FromFile(dst)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": i18n.T(lang)["undecodable_image"]})
		return
	}

	probs, status, msg := h.infer(c.Request.Context(), tensor)
	if probs == nil {
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	best, conf := vision.ArgMax(probs)
	record, err := h.recorder.Record(best, float64(conf), services.RecordContext{
		UserID:    identity.UserID,
		Filename:  storedName,
		Language:  lang,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.log.Error("prediction persist failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to save prediction"})
		return
	}

	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"prediction.create",
		fmt.Sprintf("predicted %s (%.4f) for %s", record.PredictedClass, record.Confidence, storedName))

	result := h.composer.Compose(probs, lang)
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"prediction_id": record.ID,
		"filename":      storedName,
		"result":        result,
	})
}

// APIPredict is the machine flow: bearer token, streamed decode, compact
// response shape.
func (h *PredictionHandler) APIPredict(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	lang := i18n.Normalize(c.Query("lang"))

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no file uploaded"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid file type"})
		return
	}
	if file.Size > h.upload.MaxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "failed to read upload"})
		return
	}
	defer src.Close()

	tensor, err := h.normalizer.FromReader(src)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "could not decode image"})
		return
	}

	probs, status, msg := h.infer(c.Request.Context(), tensor)
	if probs == nil {
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	best, conf := vision.ArgMax(probs)
	record, err := h.recorder.Record(best, float64(conf), services.RecordContext{
		UserID:    identity.UserID,
		Filename:  sanitizeFilename(file.Filename),
		Language:  lang,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.log.Error("prediction persist failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to save prediction"})
		return
	}

	h.audit.Record(c.Request.Context(), identity.UserID, c.ClientIP(),
		"prediction.create",
		fmt.Sprintf("api predicted %s (%.4f)", record.PredictedClass, record.Confidence))

	result := h.composer.Compose(probs, lang)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"prediction": gin.H{
			"class":       result.PredictedClass,
			"class_index": result.ClassIndex,
			"confidence":  result.Confidence,
			"is_healthy":  result.Healthy,
			"severity":    result.Severity,
			"top_3":       result.TopClasses,
		},
	})
}

// History lists the caller's predictions, newest first, cursor paginated.
func (h *PredictionHandler) History(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	p := ParsePagination(c)

	query := h.db.
		Where("user_id = ?", identity.UserID).
		Order("created_at DESC").
		Limit(p.Limit + 1)
	if p.Before != nil {
		query = query.Where("created_at < ?", *p.Before)
	}

	var rows []models.Prediction
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load history"})
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
