package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/models"
	"github.com/Sahil31312/plant-disease-classifier/taxonomy"
)

// RecordContext is the request-side metadata stored with every prediction.
type RecordContext struct {
	UserID    *uint
	Filename  string
	Language  string
	IPAddress string
	UserAgent string
}

// Recorder persists one Prediction row per completed inference. Persistence
// happens before the result is returned; a failed write fails the request.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Record(classIndex int, confidence float64, rc RecordContext) (*models.Prediction, error) {
	row := models.Prediction{
		UserID:         rc.UserID,
		Filename:       rc.Filename,
		ClassIndex:     classIndex,
		PredictedClass: taxonomy.Label(classIndex, "en"),
		Confidence:     confidence,
		Healthy:        taxonomy.IsHealthy(classIndex),
		Language:       rc.Language,
		CreatedAt:      time.Now().UTC(),
		IPAddress:      rc.IPAddress,
		UserAgent:      rc.UserAgent,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
