package models

import "time"

// DiseaseInfo holds the editable knowledge text for one (class, language)
// pair. At most one row may exist per pair.
type DiseaseInfo struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	DiseaseID      int       `gorm:"column:disease_id;not null;uniqueIndex:idx_disease_lang" json:"disease_id"`
	Language       string    `gorm:"column:language;size:10;default:en;uniqueIndex:idx_disease_lang" json:"language"`
	Severity       string    `gorm:"column:severity;size:20" json:"severity"`
	Symptoms       string    `gorm:"column:symptoms" json:"symptoms"`
	Treatment      string    `gorm:"column:treatment" json:"treatment"`
	Prevention     string    `gorm:"column:prevention" json:"prevention"`
	Recommendation string    `gorm:"column:recommendation" json:"recommendation"`
	Warning        string    `gorm:"column:warning" json:"warning"`
	Disclaimer     string    `gorm:"column:disclaimer" json:"disclaimer"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
	UpdatedBy      *uint     `gorm:"column:updated_by" json:"updated_by"`
}

func (DiseaseInfo) TableName() string { return "disease_info" }
