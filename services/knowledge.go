package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/i18n"
	"github.com/Sahil31312/plant-disease-classifier/models"
	"github.com/Sahil31312/plant-disease-classifier/taxonomy"
)

// KnowledgePayload is the disease text shown alongside a prediction.
type KnowledgePayload struct {
	Severity       string `json:"severity"`
	Symptoms       string `json:"symptoms"`
	Treatment      string `json:"treatment"`
	Prevention     string `json:"prevention"`
	Recommendation string `json:"recommendation"`
	Warning        string `json:"warning"`
	Disclaimer     string `json:"disclaimer"`
}

// fallbackPayload is returned whenever no knowledge row exists for a class,
// so prediction results always carry a complete disease section.
var fallbackPayload = KnowledgePayload{
	Severity:       "Medium",
	Symptoms:       "Information not available.",
	Treatment:      "Consult a local agricultural extension office.",
	Prevention:     "Follow general crop hygiene practices.",
	Recommendation: "Monitor the plant and re-test if symptoms persist.",
	Warning:        "This result is advisory only.",
	Disclaimer:     "Automated classification can be wrong. Verify with an expert before acting.",
}

type KnowledgeService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewKnowledgeService(db *gorm.DB, log *zap.Logger) *KnowledgeService {
	return &KnowledgeService{db: db, log: log}
}

// Lookup returns the knowledge payload for a class in the given language.
// It never fails: a missing row (or a database error) yields the fixed
// fallback payload so the prediction pipeline is not blocked.
func (s *KnowledgeService) Lookup(classIndex int, lang string) KnowledgePayload {
	lang = i18n.Normalize(lang)

	var row models.DiseaseInfo
	err := s.db.
		Where("disease_id = ? AND language = ?", classIndex, lang).
		First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("disease info lookup failed",
				zap.Int("disease_id", classIndex),
				zap.String("language", lang),
				zap.Error(err),
			)
		}
		return fallbackPayload
	}
	return payloadFromRow(row)
}

func payloadFromRow(row models.DiseaseInfo) KnowledgePayload {
	return KnowledgePayload{
		Severity:       row.Severity,
		Symptoms:       row.Symptoms,
		Treatment:      row.Treatment,
		Prevention:     row.Prevention,
		Recommendation: row.Recommendation,
		Warning:        row.Warning,
		Disclaimer:     row.Disclaimer,
	}
}

// Get returns the stored row for one (class, language) pair.
func (s *KnowledgeService) Get(classIndex int, lang string) (*models.DiseaseInfo, error) {
	var row models.DiseaseInfo
	err := s.db.
		Where("disease_id = ? AND language = ?", classIndex, i18n.Normalize(lang)).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert creates or replaces the knowledge row for one (class, language)
// pair and stamps the editing admin.
func (s *KnowledgeService) Upsert(classIndex int, lang string, payload KnowledgePayload, adminID *uint) error {
	lang = i18n.Normalize(lang)

	var row models.DiseaseInfo
	err := s.db.
		Where("disease_id = ? AND language = ?", classIndex, lang).
		First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.DiseaseID = classIndex
	row.Language = lang
	row.Severity = payload.Severity
	row.Symptoms = payload.Symptoms
	row.Treatment = payload.Treatment
	row.Prevention = payload.Prevention
	row.Recommendation = payload.Recommendation
	row.Warning = payload.Warning
	row.Disclaimer = payload.Disclaimer
	row.UpdatedAt = time.Now().UTC()
	row.UpdatedBy = adminID

	return s.db.Save(&row).Error
}

// Delete removes the knowledge row for one (class, language) pair.
func (s *KnowledgeService) Delete(classIndex int, lang string) error {
	result := s.db.
		Where("disease_id = ? AND language = ?", classIndex, i18n.Normalize(lang)).
		Delete(&models.DiseaseInfo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns every knowledge row, ordered for stable admin listings.
func (s *KnowledgeService) List() ([]models.DiseaseInfo, error) {
	var rows []models.DiseaseInfo
	err := s.db.
		Order("disease_id ASC, language ASC").
		Find(&rows).Error
	return rows, err
}

// Sync fills in placeholder rows for every (class, language) pair that has
// none yet. Existing rows are never touched. Returns how many rows were
// created.
func (s *KnowledgeService) Sync(adminID *uint) (int, error) {
	created := 0
	for _, lang := range i18n.Languages() {
		for idx := 0; idx < taxonomy.NumClasses(); idx++ {
			var count int64
			if err := s.db.Model(&models.DiseaseInfo{}).
				Where("disease_id = ? AND language = ?", idx, lang).
				Count(&count).Error; err != nil {
				return created, err
			}
			if count > 0 {
				continue
			}
			row := seedRow(idx, lang)
			row.UpdatedBy = adminID
			if err := s.db.Create(&row).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func seedRow(classIndex int, lang string) models.DiseaseInfo {
	label := taxonomy.Label(classIndex, lang)
	return models.DiseaseInfo{
		DiseaseID:      classIndex,
		Language:       lang,
		Severity:       taxonomy.DefaultSeverity(classIndex, lang),
		Symptoms:       fmt.Sprintf("Symptoms for %s", label),
		Treatment:      fmt.Sprintf("Treatment for %s", label),
		Prevention:     fmt.Sprintf("Prevention for %s", label),
		Recommendation: fmt.Sprintf("Recommendation for %s", label),
		Warning:        fmt.Sprintf("Warning for %s", label),
		Disclaimer:     "Automated classification can be wrong. Verify with an expert before acting.",
		UpdatedAt:      time.Now().UTC(),
	}
}
