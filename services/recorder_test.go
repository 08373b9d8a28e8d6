package services

import (
	"testing"

	"github.com/Sahil31312/plant-disease-classifier/models"
)

func TestRecordPersistsRow(t *testing.T) {
	db := testDB(t)
	recorder := NewRecorder(db)

	userID := uint(3)
	row, err := recorder.Record(7, 0.91, RecordContext{
		UserID:    &userID,
		Filename:  "leaf.png",
		Language:  "ps",
		IPAddress: "10.0.0.1",
		UserAgent: "test-agent",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if row.ID == 0 {
		t.Error("row should have an id after create")
	}
	if row.PredictedClass != "Tomato Late Blight" {
		t.Errorf("PredictedClass = %q", row.PredictedClass)
	}
	if row.Healthy {
		t.Error("class 7 must not be healthy")
	}

	var stored models.Prediction
	if err := db.First(&stored, row.ID).Error; err != nil {
		t.Fatalf("load stored row: %v", err)
	}
	if stored.ClassIndex != 7 || stored.Confidence != 0.91 {
		t.Errorf("stored row = %+v", stored)
	}
	if stored.UserID == nil || *stored.UserID != 3 {
		t.Error("UserID not persisted")
	}
}

func TestRecordAnonymousAndHealthy(t *testing.T) {
	db := testDB(t)
	recorder := NewRecorder(db)

	row, err := recorder.Record(1, 0.88, RecordContext{
		Filename: "pepper.jpg",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if row.UserID != nil {
		t.Error("anonymous prediction must have nil UserID")
	}
	if !row.Healthy {
		t.Error("class 1 must be healthy")
	}
}
