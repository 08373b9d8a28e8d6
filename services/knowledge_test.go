package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/Sahil31312/plant-disease-classifier/i18n"
	"github.com/Sahil31312/plant-disease-classifier/models"
	"github.com/Sahil31312/plant-disease-classifier/taxonomy"
)

func TestLookupFallsBackWhenMissing(t *testing.T) {
	svc := NewKnowledgeService(testDB(t), testLogger())

	payload := svc.Lookup(3, "en")
	if payload.Severity != "Medium" {
		t.Errorf("fallback severity = %q, want Medium", payload.Severity)
	}
	if payload.Symptoms == "" || payload.Disclaimer == "" {
		t.Error("fallback payload must be fully populated")
	}
}

func TestLookupReturnsStoredRow(t *testing.T) {
	db := testDB(t)
	svc := NewKnowledgeService(db, testLogger())

	db.Create(&models.DiseaseInfo{
		DiseaseID: 2,
		Language:  "en",
		Severity:  "High",
		Symptoms:  "Dark concentric spots on older leaves",
	})

	payload := svc.Lookup(2, "en")
	if payload.Severity != "High" {
		t.Errorf("severity = %q, want High", payload.Severity)
	}
	if payload.Symptoms != "Dark concentric spots on older leaves" {
		t.Errorf("symptoms = %q", payload.Symptoms)
	}
}

func TestSyncFillsMissingPairsOnly(t *testing.T) {
	db := testDB(t)
	svc := NewKnowledgeService(db, testLogger())

	// Pre-existing hand-edited row must survive a sync untouched.
	db.Create(&models.DiseaseInfo{
		DiseaseID: 0,
		Language:  "en",
		Severity:  "Critical",
		Symptoms:  "hand edited",
	})

	created, err := svc.Sync(nil)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	want := taxonomy.NumClasses()*len(i18n.Languages()) - 1
	if created != want {
		t.Errorf("created = %d, want %d", created, want)
	}

	payload := svc.Lookup(0, "en")
	if payload.Severity != "Critical" || payload.Symptoms != "hand edited" {
		t.Error("sync overwrote an existing row")
	}

	// Second sync is a no-op.
	created, err = svc.Sync(nil)
	if err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	if created != 0 {
		t.Errorf("second sync created %d rows, want 0", created)
	}
}

func TestSyncSeedsDefaultSeverities(t *testing.T) {
	db := testDB(t)
	svc := NewKnowledgeService(db, testLogger())

	if _, err := svc.Sync(nil); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if got := svc.Lookup(0, "en").Severity; got != "High" {
		t.Errorf("class 0 severity = %q, want High", got)
	}
	if got := svc.Lookup(1, "en").Severity; got != "None" {
		t.Errorf("class 1 severity = %q, want None", got)
	}
	if got := svc.Lookup(6, "ps").Severity; got != "منځنی" {
		t.Errorf("class 6 ps severity = %q", got)
	}
}

func TestUpsertAndDelete(t *testing.T) {
	db := testDB(t)
	svc := NewKnowledgeService(db, testLogger())

	adminID := uint(7)
	err := svc.Upsert(5, "en", KnowledgePayload{
		Severity: "High",
		Symptoms: "water-soaked lesions",
	}, &adminID)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	row, err := svc.Get(5, "en")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if row.UpdatedBy == nil || *row.UpdatedBy != 7 {
		t.Error("UpdatedBy not stamped")
	}

	// Update in place must not create a second row.
	if err := svc.Upsert(5, "en", KnowledgePayload{Severity: "Medium"}, &adminID); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	var count int64
	db.Model(&models.DiseaseInfo{}).Where("disease_id = ?", 5).Count(&count)
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}

	if err := svc.Delete(5, "en"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(5, "en"); err != gorm.ErrRecordNotFound {
		t.Errorf("second Delete err = %v, want ErrRecordNotFound", err)
	}
}
