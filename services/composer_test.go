package services

import (
	"testing"

	"github.com/Sahil31312/plant-disease-classifier/taxonomy"
)

func testProbs() []float32 {
	// Class 7 wins, then 2, then 0.
	return []float32{0.15, 0.02, 0.20, 0.05, 0.01, 0.03, 0.04, 0.50}
}

func TestComposeBasics(t *testing.T) {
	db := testDB(t)
	knowledge := NewKnowledgeService(db, testLogger())
	if _, err := knowledge.Sync(nil); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	composer := NewComposer(knowledge)

	result := composer.Compose(testProbs(), "en")

	if result.ClassIndex != 7 {
		t.Errorf("ClassIndex = %d, want 7", result.ClassIndex)
	}
	if result.PredictedClass != "Tomato Late Blight" {
		t.Errorf("PredictedClass = %q", result.PredictedClass)
	}
	if result.Healthy {
		t.Error("class 7 is not healthy")
	}
	if result.Severity != "High" {
		t.Errorf("Severity = %q, want High", result.Severity)
	}
	if result.SeverityColor != "danger" {
		t.Errorf("SeverityColor = %q, want danger", result.SeverityColor)
	}
	if result.Direction != "ltr" {
		t.Errorf("Direction = %q, want ltr", result.Direction)
	}

	if len(result.TopClasses) != 3 {
		t.Fatalf("len(TopClasses) = %d, want 3", len(result.TopClasses))
	}
	wantTop := []int{7, 2, 0}
	for i, want := range wantTop {
		if result.TopClasses[i].ClassIndex != want {
			t.Errorf("TopClasses[%d] = %d, want %d", i, result.TopClasses[i].ClassIndex, want)
		}
	}

	if len(result.AllPredictions) != taxonomy.NumClasses() {
		t.Errorf("len(AllPredictions) = %d, want %d",
			len(result.AllPredictions), taxonomy.NumClasses())
	}
}

func TestComposeHealthyClass(t *testing.T) {
	db := testDB(t)
	knowledge := NewKnowledgeService(db, testLogger())
	composer := NewComposer(knowledge)

	probs := make([]float32, taxonomy.NumClasses())
	probs[4] = 0.9

	result := composer.Compose(probs, "en")
	if !result.Healthy {
		t.Error("class 4 must be healthy")
	}
	if result.PredictedClass != "Potato Healthy" {
		t.Errorf("PredictedClass = %q", result.PredictedClass)
	}
}

func TestComposePashtoLocalization(t *testing.T) {
	db := testDB(t)
	knowledge := NewKnowledgeService(db, testLogger())
	if _, err := knowledge.Sync(nil); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	composer := NewComposer(knowledge)

	result := composer.Compose(testProbs(), "ps")
	if result.Direction != "rtl" {
		t.Errorf("Direction = %q, want rtl", result.Direction)
	}
	if result.Language != "ps" {
		t.Errorf("Language = %q, want ps", result.Language)
	}
	if result.PredictedClass != "ټماټر وروستنۍ بلایټ" {
		t.Errorf("PredictedClass = %q", result.PredictedClass)
	}
	if result.Severity != "لوړ" {
		t.Errorf("Severity = %q", result.Severity)
	}
	if result.SeverityColor != "danger" {
		t.Errorf("SeverityColor = %q, want danger", result.SeverityColor)
	}
}

func TestComposeFallbackWhenKnowledgeMissing(t *testing.T) {
	db := testDB(t)
	knowledge := NewKnowledgeService(db, testLogger())
	composer := NewComposer(knowledge)

	result := composer.Compose(testProbs(), "en")
	if result.Disease.Severity != "Medium" {
		t.Errorf("fallback severity = %q, want Medium", result.Disease.Severity)
	}
}

func TestComposeUnsupportedLanguageNormalizes(t *testing.T) {
	db := testDB(t)
	knowledge := NewKnowledgeService(db, testLogger())
	composer := NewComposer(knowledge)

	result := composer.Compose(testProbs(), "fr")
	if result.Language != "en" {
		t.Errorf("Language = %q, want en", result.Language)
	}
}
