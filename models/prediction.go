package models

import "time"

// Prediction is written once per completed inference and never mutated.
// The predicted label is stored denormalized next to the class index so
// history stays readable even if labels are later reworded.
type Prediction struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID         *uint     `gorm:"column:user_id;index" json:"user_id"`
	Filename       string    `gorm:"column:filename;size:200;not null" json:"filename"`
	ClassIndex     int       `gorm:"column:class_index;not null" json:"class_index"`
	PredictedClass string    `gorm:"column:predicted_class;size:100;not null" json:"predicted_class"`
	Confidence     float64   `gorm:"column:confidence;not null" json:"confidence"`
	Healthy        bool      `gorm:"column:is_healthy;default:false" json:"is_healthy"`
	Language       string    `gorm:"column:language;size:10;default:en" json:"language"`
	CreatedAt      time.Time `gorm:"column:created_at;index" json:"created_at"`
	IPAddress      string    `gorm:"column:ip_address;size:50" json:"ip_address"`
	UserAgent      string    `gorm:"column:user_agent" json:"user_agent"`
}

func (Prediction) TableName() string { return "predictions" }
