package services

import (
	"github.com/Sahil31312/plant-disease-classifier/i18n"
	"github.com/Sahil31312/plant-disease-classifier/taxonomy"
	"github.com/Sahil31312/plant-disease-classifier/vision"
)

// ClassEntry is one scored class in a result, localized for display.
type ClassEntry struct {
	ClassIndex int     `json:"class_index"`
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	Severity   string  `json:"severity"`
	Color      string  `json:"color"`
}

// Result is the composed payload a prediction request returns.
type Result struct {
	PredictedClass string           `json:"predicted_class"`
	ClassIndex     int              `json:"class_index"`
	Confidence     float64          `json:"confidence"`
	Healthy        bool             `json:"is_healthy"`
	Severity       string           `json:"severity"`
	SeverityColor  string           `json:"severity_color"`
	Disease        KnowledgePayload `json:"disease_info"`
	TopClasses     []ClassEntry     `json:"top_classes"`
	AllPredictions []ClassEntry     `json:"all_predictions"`
	Language       string           `json:"language"`
	Direction      string           `json:"direction"`
}

// Composer turns a raw probability vector into a localized result, joining
// the class taxonomy with the stored disease knowledge.
type Composer struct {
	knowledge *KnowledgeService
}

func NewComposer(knowledge *KnowledgeService) *Composer {
	return &Composer{knowledge: knowledge}
}

func (c *Composer) entry(score vision.ClassScore, lang string) ClassEntry {
	severity := c.knowledge.Lookup(score.Index, lang).Severity
	return ClassEntry{
		ClassIndex: score.Index,
		Class:      taxonomy.Label(score.Index, lang),
		Confidence: float64(score.Confidence),
		Severity:   severity,
		Color:      taxonomy.SeverityColor(severity),
	}
}

// Compose builds the full result for one probability vector. The vector is
// index-aligned with the class taxonomy.
func (c *Composer) Compose(probs []float32, lang string) Result {
	lang = i18n.Normalize(lang)

	best, conf := vision.ArgMax(probs)
	knowledge := c.knowledge.Lookup(best, lang)

	top := vision.TopK(probs, 3)
	topEntries := make([]ClassEntry, 0, len(top))
	for _, score := range top {
		topEntries = append(topEntries, c.entry(score, lang))
	}

	all := make([]ClassEntry, 0, len(probs))
	for i, p := range probs {
		all = append(all, c.entry(vision.ClassScore{Index: i, Confidence: p}, lang))
	}

	return Result{
		PredictedClass: taxonomy.Label(best, lang),
		ClassIndex:     best,
		Confidence:     float64(conf),
		Healthy:        taxonomy.IsHealthy(best),
		Severity:       knowledge.Severity,
		SeverityColor:  taxonomy.SeverityColor(knowledge.Severity),
		Disease:        knowledge,
		TopClasses:     topEntries,
		AllPredictions: all,
		Language:       lang,
		Direction:      i18n.Direction(lang),
	}
}
